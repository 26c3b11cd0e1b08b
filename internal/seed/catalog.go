package seed

// 演示数据目录：食物、运动、工作、事件、心情与活动建议的候选项。

type demoUser struct {
	Username string
	Email    string
	Password string
	Bio      string
}

type foodItem struct {
	Name     string
	MealType string
	Calories int
}

type exerciseItem struct {
	Type           string
	Intensity      string
	CaloriesBurned int
}

type eventItem struct {
	Description  string
	EventType    string
	ImpactRating int
}

type recommendationItem struct {
	ActivityName    string
	Description     string
	DurationMinutes int
	ExpectedBenefit string
}

var demoUsers = []demoUser{
	{
		Username: "johndoe",
		Email:    "john@example.com",
		Password: "password123",
		Bio:      "Fitness enthusiast and healthy eating advocate.",
	},
	{
		Username: "janedoe",
		Email:    "jane@example.com",
		Password: "password123",
		Bio:      "Working professional trying to maintain work-life balance.",
	},
	{
		Username: "samsmith",
		Email:    "sam@example.com",
		Password: "password123",
		Bio:      "Musician and night owl. Working on better sleep habits.",
	},
}

var foodCatalog = []foodItem{
	{Name: "Oatmeal with berries", MealType: "breakfast", Calories: 320},
	{Name: "Greek yogurt with honey", MealType: "breakfast", Calories: 220},
	{Name: "Avocado toast", MealType: "breakfast", Calories: 350},
	{Name: "Chicken salad", MealType: "lunch", Calories: 450},
	{Name: "Veggie wrap", MealType: "lunch", Calories: 380},
	{Name: "Quinoa bowl", MealType: "lunch", Calories: 420},
	{Name: "Salmon with vegetables", MealType: "dinner", Calories: 520},
	{Name: "Pasta with tomato sauce", MealType: "dinner", Calories: 560},
	{Name: "Stir-fry with tofu", MealType: "dinner", Calories: 480},
	{Name: "Apple", MealType: "snack", Calories: 95},
	{Name: "Protein bar", MealType: "snack", Calories: 180},
	{Name: "Mixed nuts", MealType: "snack", Calories: 210},
}

// 乳制品类食物，用于制造周二/周五的腹胀-情绪关联
var bloatingFoodCatalog = []foodItem{
	{Name: "Dairy-heavy pizza", MealType: "dinner", Calories: 850},
	{Name: "Cheesy pasta", MealType: "dinner", Calories: 780},
	{Name: "Ice cream sundae", MealType: "snack", Calories: 450},
	{Name: "Milkshake", MealType: "snack", Calories: 520},
}

var exerciseCatalog = []exerciseItem{
	{Type: "Running", Intensity: "moderate", CaloriesBurned: 350},
	{Type: "Cycling", Intensity: "high", CaloriesBurned: 500},
	{Type: "Swimming", Intensity: "high", CaloriesBurned: 450},
	{Type: "Yoga", Intensity: "low", CaloriesBurned: 200},
	{Type: "Weight training", Intensity: "moderate", CaloriesBurned: 300},
	{Type: "HIIT workout", Intensity: "very_high", CaloriesBurned: 450},
	{Type: "Walking", Intensity: "low", CaloriesBurned: 150},
	{Type: "Pilates", Intensity: "moderate", CaloriesBurned: 250},
	{Type: "Dancing", Intensity: "moderate", CaloriesBurned: 280},
}

var workDescriptions = []string{
	"Focused deep work session",
	"Team meetings",
	"Administrative tasks",
	"Client presentations",
	"Email and communication",
	"Project planning",
	"Learning and development",
	"Brainstorming session",
}

var eventCatalog = []eventItem{
	{Description: "Dinner with friends", EventType: "social", ImpactRating: 3},
	{Description: "Family gathering", EventType: "social", ImpactRating: 4},
	{Description: "Doctor's appointment", EventType: "health", ImpactRating: 0},
	{Description: "Work deadline", EventType: "professional", ImpactRating: -2},
	{Description: "Job promotion", EventType: "professional", ImpactRating: 5},
	{Description: "Argument with partner", EventType: "personal", ImpactRating: -3},
	{Description: "Relaxing weekend", EventType: "personal", ImpactRating: 4},
	{Description: "Meditation session", EventType: "health", ImpactRating: 2},
	{Description: "Volunteering", EventType: "social", ImpactRating: 3},
	{Description: "Movie night", EventType: "social", ImpactRating: 2},
}

var moodDescriptions = []string{
	"Feeling energetic and positive",
	"Stressed but managing",
	"Tired but content",
	"Anxious about work",
	"Happy and relaxed",
	"Overwhelmed with responsibilities",
	"Motivated and focused",
	"Calm and centered",
	"Irritable and restless",
	"Satisfied and accomplished",
}

var dairyMoodDescriptions = []string{
	"Feeling bloated and uncomfortable",
	"Stomach discomfort after eating",
	"Digestive issues affecting my mood",
	"Feeling sluggish after meal",
	"Uncomfortable digestive symptoms",
}

var recommendationCatalog = []recommendationItem{
	{
		ActivityName:    "Morning meditation",
		Description:     "Start your day with 10 minutes of mindfulness meditation to center yourself and prepare for the day ahead.",
		DurationMinutes: 10,
		ExpectedBenefit: "Reduced stress and improved focus",
	},
	{
		ActivityName:    "Nature walk",
		Description:     "Take a walk in a natural setting, paying attention to the sights, sounds, and sensations around you.",
		DurationMinutes: 30,
		ExpectedBenefit: "Mood improvement and stress reduction",
	},
	{
		ActivityName:    "Digital detox",
		Description:     "Set aside time without screens to read, reflect, or engage in a hobby.",
		DurationMinutes: 60,
		ExpectedBenefit: "Mental clarity and reduced anxiety",
	},
	{
		ActivityName:    "Gratitude journaling",
		Description:     "Write down three things you're grateful for today, with specific details about why they matter to you.",
		DurationMinutes: 15,
		ExpectedBenefit: "Improved positive outlook and emotional well-being",
	},
	{
		ActivityName:    "Social connection",
		Description:     "Reach out to a friend or family member you haven't spoken to recently for a meaningful conversation.",
		DurationMinutes: 20,
		ExpectedBenefit: "Enhanced sense of belonging and emotional support",
	},
}
