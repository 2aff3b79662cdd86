package plan

// Library defines the built-in plans available without any plan files.
var Library = []Plan{
	{
		Name: "Full Body Express",
		Warmup: []Step{
			{Name: "Jumping Jacks", DurationSeconds: 30},
			{Name: "Arm Circles", DurationSeconds: 20},
		},
		Exercises: []Exercise{
			{Name: "Squats", WorkSeconds: 45, Sets: 3},
			{Name: "Push-ups", WorkSeconds: 30, Sets: 3},
			{Name: "Plank", WorkSeconds: 40, Sets: 3},
			{Name: "Lunges", WorkSeconds: 45, Sets: 3},
		},
		Cooldown: []Step{
			{Name: "Quad Stretch", DurationSeconds: 30},
			{Name: "Hamstring Stretch", DurationSeconds: 30},
		},
		DefaultRestSeconds: 30,
	},
	{
		Name: "Core Blast",
		Warmup: []Step{
			{Name: "High Knees", DurationSeconds: 30},
		},
		Exercises: []Exercise{
			{Name: "Crunches", Reps: 20, RepBased: true, Sets: 3},
			{Name: "Mountain Climbers", WorkSeconds: 30, Sets: 3},
			{Name: "Russian Twists", Reps: 24, RepBased: true, Sets: 3},
			{Name: "Dead Bug", WorkSeconds: 40, Sets: 3, RestSeconds: 20},
		},
		Cooldown: []Step{
			{Name: "Cobra Stretch", DurationSeconds: 30},
			{Name: "Child's Pose", DurationSeconds: 40},
		},
		DefaultRestSeconds: 25,
	},
	{
		Name: "HIIT 20",
		Warmup: []Step{
			{Name: "Jog in Place", DurationSeconds: 60},
			{Name: "Leg Swings", DurationSeconds: 30},
		},
		Exercises: []Exercise{
			{Name: "Burpees", WorkSeconds: 30, Sets: 4, RestSeconds: 30},
			{Name: "Jump Squats", WorkSeconds: 30, Sets: 4, RestSeconds: 30},
			{Name: "Push-up to Plank", WorkSeconds: 30, Sets: 4, RestSeconds: 30},
			{Name: "Skaters", WorkSeconds: 30, Sets: 4, RestSeconds: 30},
			{Name: "Bicycle Crunches", WorkSeconds: 30, Sets: 4, RestSeconds: 30},
		},
		Cooldown: []Step{
			{Name: "Walk it Out", DurationSeconds: 60},
			{Name: "Full Body Stretch", DurationSeconds: 60},
		},
		DefaultRestSeconds: 30,
	},
	{
		Name: "Strength Basics",
		Exercises: []Exercise{
			{Name: "Goblet Squats", Reps: 12, RepBased: true, Sets: 4},
			{Name: "Dumbbell Rows", Reps: 10, RepBased: true, Sets: 4},
			{Name: "Overhead Press", Reps: 8, RepBased: true, Sets: 4},
			{Name: "Romanian Deadlifts", Reps: 10, RepBased: true, Sets: 4},
		},
		Cooldown: []Step{
			{Name: "Shoulder Stretch", DurationSeconds: 30},
			{Name: "Hip Flexor Stretch", DurationSeconds: 30},
		},
		DefaultRestSeconds: 60,
	},
	{
		Name: "Quick Stretch",
		Warmup: []Step{
			{Name: "Neck Rolls", DurationSeconds: 20},
		},
		Exercises: []Exercise{
			{Name: "Cat-Cow", WorkSeconds: 40, Sets: 2, RestSeconds: 15},
			{Name: "World's Greatest Stretch", WorkSeconds: 45, Sets: 2, RestSeconds: 15},
		},
		Cooldown: []Step{
			{Name: "Deep Breathing", DurationSeconds: 60},
		},
		DefaultRestSeconds: 15,
	},
}
