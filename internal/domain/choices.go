package domain

import "strings"

// Display labels for the choice keys stored on a profile.
var fitnessGoalLabels = map[string]string{
	"increase_strength":                    "Increase Strength",
	"improve_muscle_gain":                  "Improve Muscle Gain",
	"increase_endurance":                   "Increase Endurance",
	"improve_flexibility":                  "Improve Flexibility",
	"enhance_mobility":                     "Enhance Mobility",
	"improve_cardio_health":                "Improve Cardiovascular Health",
	"increase_core_strength":               "Increase Core Strength",
	"improve_stability":                    "Improve Stability",
	"improve_balance":                      "Improve Balance",
	"improve_posture":                      "Improve Posture",
	"increase_functional_fitness":          "Increase Functional Fitness",
	"enhance_athletic_performance":         "Enhance Athletic Performance",
	"speed_up_injury_recovery":             "Speed Up Injury Recovery",
	"improve_body_composition":             "Improve Body Composition",
	"increase_sprint_speed":                "Increase Sprint Speed",
	"develop_power":                        "Develop Power",
	"improve_agility":                      "Improve Agility",
	"boost_coordination":                   "Boost Coordination",
	"maintain_healthy_weight":              "Maintain Healthy Weight",
	"increase_flexibility_and_strength":    "Increase Flexibility and Strength",
	"improve_endurance_racing_performance": "Improve Endurance Racing Performance",
	"enhance_sports_performance":           "Enhance Sports Performance",
	"improve_postpartum_recovery":          "Improve Postpartum Recovery",
	"optimize_functional_movement":         "Optimize Functional Movement",
	"increase_stamina":                     "Increase Stamina",
	"focus_on_longevity":                   "Focus on Longevity",
	"master_bodyweight_exercises":          "Master Bodyweight Exercises",
	"increase_kickboxing_fitness":          "Increase Kickboxing Fitness",
	"improve_boxing_fitness":               "Improve Boxing Fitness",
	"improve_aerobics_fitness":             "Improve Aerobics Fitness",
	"build_strength_in_bodybuilding":       "Build Strength in Bodybuilding",
	"improve_calisthenics_skills":          "Improve Calisthenics Skills",
	"improve_powerlifting_skills":          "Improve Powerlifting Skills",
	"focus_on_strength_training":           "Focus on Strength Training",
	"improve_posture_in_yoga":              "Improve Posture in Yoga",
	"boost_flexibility_in_stretching":      "Boost Flexibility in Stretching",
	"enhance_walking_fitness":              "Enhance Walking Fitness",
	"improve_running_fitness":              "Improve Running Fitness",
	"improve_resistance_training":          "Improve Resistance Training",
	"focus_on_low_impact_fitness":          "Focus on Low Impact Fitness",
}

var workoutTypeLabels = map[string]string{
	"aerobics":         "Aerobics",
	"barre":            "Barre",
	"bodybuilding":     "Bodybuilding",
	"bootcamp":         "Bootcamp",
	"boxing":           "Boxing",
	"calisthenics":     "Calisthenics",
	"circuit":          "Circuit Training",
	"crossfit":         "CrossFit",
	"crossfit_partner": "CrossFit Partner Workouts",
	"cycling":          "Indoor Cycling/Spin",
	"f45":              "F45 Training",
	"functional":       "Functional Training",
	"hiit":             "HIIT (High-Intensity Interval Training)",
	"kickboxing":       "Kickboxing",
	"mobility":         "Mobility/Flexibility",
	"pilates":          "Pilates",
	"plyometrics":      "Plyometrics",
	"powerlifting":     "Powerlifting",
	"strength":         "Strength Training",
	"tabata":           "Tabata Training",
	"yoga":             "Yoga",
}

var durationLabels = map[PlanDuration]string{
	DurationDay:  "One Day",
	DurationWeek: "One Week",
}

// GoalLabel returns the display label for a fitness goal key. Unknown keys
// are returned unchanged so free text survives.
func GoalLabel(key string) string {
	if l, ok := fitnessGoalLabels[key]; ok {
		return l
	}
	return key
}

// WorkoutTypeLabel returns the display label for a workout type key.
func WorkoutTypeLabel(key string) string {
	if l, ok := workoutTypeLabels[key]; ok {
		return l
	}
	return key
}

func (d PlanDuration) Label() string {
	if l, ok := durationLabels[d]; ok {
		return l
	}
	return string(d)
}

// JoinLabels maps every key through label and joins them with ", ".
func JoinLabels(keys []string, label func(string) string) string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, label(k))
		}
	}
	return strings.Join(out, ", ")
}

// CatalogItem is one entry of the built-in equipment catalog.
type CatalogItem struct {
	Name     string
	Category string
}

// EquipmentCatalog is the canonical equipment list used for seeding.
var EquipmentCatalog = []CatalogItem{
	{Name: "Pull-Up Bar", Category: "Public Park Equipment"},
	{Name: "Dip Station", Category: "Public Park Equipment"},
	{Name: "Monkey Bars", Category: "Public Park Equipment"},
	{Name: "Benches", Category: "Public Park Equipment"},
	{Name: "Resistance Bands", Category: "Public Park Equipment"},
	{Name: "Climbing Wall", Category: "Public Park Equipment"},
	{Name: "Parallel Bars", Category: "Public Park Equipment"},
	{Name: "Push-Up Bars", Category: "Public Park Equipment"},
	{Name: "Sit-Up Bench", Category: "Public Park Equipment"},
	{Name: "Balance Beam", Category: "Public Park Equipment"},
	{Name: "Bodyweight Workout Station", Category: "Public Park Equipment"},
	{Name: "Battle Rope Anchors", Category: "Public Park Equipment"},
	{Name: "Outdoor Elliptical Machines", Category: "Public Park Equipment"},
	{Name: "Steppers", Category: "Public Park Equipment"},
	{Name: "Leg Press Stations", Category: "Public Park Equipment"},
	{Name: "Body Twist Machines", Category: "Public Park Equipment"},
	{Name: "Treadmill", Category: "Gym Cardio Machines"},
	{Name: "Elliptical", Category: "Gym Cardio Machines"},
	{Name: "Stationary Bike", Category: "Gym Cardio Machines"},
	{Name: "Rowing Machine", Category: "Gym Cardio Machines"},
	{Name: "Assault Bike", Category: "Gym Cardio Machines"},
	{Name: "Stair Climber", Category: "Gym Cardio Machines"},
	{Name: "Fan Bike", Category: "Gym Cardio Machines"},
	{Name: "Spin Bike", Category: "Gym Cardio Machines"},
	{Name: "Air Runner", Category: "Gym Cardio Machines"},
	{Name: "SkiErg", Category: "Gym Cardio Machines"},
	{Name: "Recumbent Bike", Category: "Gym Cardio Machines"},
	{Name: "Arc Trainer", Category: "Gym Cardio Machines"},
	{Name: "Climbing Machine", Category: "Gym Cardio Machines"},
	{Name: "Jacobs Ladder", Category: "Gym Cardio Machines"},
	{Name: "Vertical Climber", Category: "Gym Cardio Machines"},
	{Name: "Upper Body Ergometer (UBE)", Category: "Gym Cardio Machines"},
	{Name: "Smith Machine", Category: "Gym Strength Machines"},
	{Name: "Leg Press Machine", Category: "Gym Strength Machines"},
	{Name: "Lat Pulldown Machine", Category: "Gym Strength Machines"},
	{Name: "Chest Press Machine", Category: "Gym Strength Machines"},
	{Name: "Leg Extension Machine", Category: "Gym Strength Machines"},
	{Name: "Cable Machine", Category: "Gym Strength Machines"},
	{Name: "Hack Squat Machine", Category: "Gym Strength Machines"},
	{Name: "Shoulder Press Machine", Category: "Gym Strength Machines"},
	{Name: "Seated Row Machine", Category: "Gym Strength Machines"},
	{Name: "Pec Deck Machine", Category: "Gym Strength Machines"},
	{Name: "Ab Crunch Machine", Category: "Gym Strength Machines"},
	{Name: "Leg Curl Machine", Category: "Gym Strength Machines"},
	{Name: "Glute Bridge Machine", Category: "Gym Strength Machines"},
	{Name: "Calf Raise Machine", Category: "Gym Strength Machines"},
	{Name: "Inner/Outer Thigh Machine", Category: "Gym Strength Machines"},
	{Name: "Biceps Curl Machine", Category: "Gym Strength Machines"},
	{Name: "Triceps Extension Machine", Category: "Gym Strength Machines"},
	{Name: "Multi-Station Gym Machine", Category: "Gym Strength Machines"},
	{Name: "Chest Fly Machine", Category: "Gym Strength Machines"},
	{Name: "Dumbbells", Category: "Gym Free Weights"},
	{Name: "Barbells", Category: "Gym Free Weights"},
	{Name: "Kettlebells", Category: "Gym Free Weights"},
	{Name: "Medicine Balls", Category: "Gym Free Weights"},
	{Name: "EZ Curl Bar", Category: "Gym Free Weights"},
	{Name: "Trap Bar", Category: "Gym Free Weights"},
	{Name: "Weight Plates", Category: "Gym Free Weights"},
	{Name: "Powerlifting Chains", Category: "Gym Free Weights"},
	{Name: "Weighted Vest", Category: "Gym Free Weights"},
	{Name: "Adjustable Dumbbells", Category: "Gym Free Weights"},
	{Name: "Ankle Weights", Category: "Gym Free Weights"},
	{Name: "Weighted Sandbags", Category: "Gym Free Weights"},
	{Name: "Power Bags", Category: "Gym Free Weights"},
	{Name: "Club Bells", Category: "Gym Free Weights"},
	{Name: "Mace Bells", Category: "Gym Free Weights"},
	{Name: "Flat Bench", Category: "Gym Benches and Racks"},
	{Name: "Adjustable Bench", Category: "Gym Benches and Racks"},
	{Name: "Squat Rack", Category: "Gym Benches and Racks"},
	{Name: "Power Rack", Category: "Gym Benches and Racks"},
	{Name: "Half Rack", Category: "Gym Benches and Racks"},
	{Name: "Preacher Curl Bench", Category: "Gym Benches and Racks"},
	{Name: "Decline Bench", Category: "Gym Benches and Racks"},
	{Name: "Incline Bench", Category: "Gym Benches and Racks"},
	{Name: "Roman Chair", Category: "Gym Benches and Racks"},
	{Name: "Hip Thrust Machine", Category: "Gym Benches and Racks"},
	{Name: "Plyo Boxes", Category: "CrossFit Equipment"},
	{Name: "Wall Balls", Category: "CrossFit Equipment"},
	{Name: "Olympic Barbells", Category: "CrossFit Equipment"},
	{Name: "Battle Ropes", Category: "CrossFit Equipment"},
	{Name: "Sled Push", Category: "CrossFit Equipment"},
	{Name: "Sandbags", Category: "CrossFit Equipment"},
	{Name: "Wooden Rings", Category: "CrossFit Equipment"},
	{Name: "GHD (Glute Ham Developer)", Category: "CrossFit Equipment"},
	{Name: "Heavy Ropes", Category: "CrossFit Equipment"},
	{Name: "Climbing Ropes", Category: "CrossFit Equipment"},
	{Name: "Tire Flip Station", Category: "CrossFit Equipment"},
	{Name: "Kegs for Lifting", Category: "CrossFit Equipment"},
	{Name: "Steel Logs", Category: "CrossFit Equipment"},
	{Name: "Slam Balls", Category: "F45 Training Equipment"},
	{Name: "Agility Ladder", Category: "F45 Training Equipment"},
	{Name: "TRX", Category: "F45 Training Equipment"},
	{Name: "Boxing Bags", Category: "F45 Training Equipment"},
	{Name: "Core Sliders", Category: "F45 Training Equipment"},
	{Name: "Bulgarian Bags", Category: "F45 Training Equipment"},
	{Name: "Resistance Tubes", Category: "F45 Training Equipment"},
	{Name: "Balance Boards", Category: "F45 Training Equipment"},
	{Name: "Yoga Mat", Category: "Yoga & Mobility Equipment"},
	{Name: "Foam Roller", Category: "Yoga & Mobility Equipment"},
	{Name: "Stretch Bands", Category: "Yoga & Mobility Equipment"},
	{Name: "Massage Balls", Category: "Yoga & Mobility Equipment"},
	{Name: "Yoga Blocks", Category: "Yoga & Mobility Equipment"},
	{Name: "Yoga Bolsters", Category: "Yoga & Mobility Equipment"},
	{Name: "Stretch Straps", Category: "Yoga & Mobility Equipment"},
	{Name: "Yoga Wheel", Category: "Yoga & Mobility Equipment"},
	{Name: "Cushions or Zafus for Meditation", Category: "Yoga & Mobility Equipment"},
	{Name: "Eye Pillows", Category: "Yoga & Mobility Equipment"},
	{Name: "Agility Cones", Category: "Functional Training Equipment"},
	{Name: "Speed Ladder", Category: "Functional Training Equipment"},
	{Name: "Parallette Bars", Category: "Functional Training Equipment"},
	{Name: "Weighted Sled", Category: "Functional Training Equipment"},
	{Name: "Jump Rope", Category: "Functional Training Equipment"},
	{Name: "Resistance Parachute", Category: "Functional Training Equipment"},
	{Name: "Balance Trainer (BOSU Ball)", Category: "Functional Training Equipment"},
	{Name: "Core Bags", Category: "Functional Training Equipment"},
	{Name: "Balance Disc", Category: "Functional Training Equipment"},
	{Name: "Landmine Attachment for Barbells", Category: "Functional Training Equipment"},
	{Name: "Sand Discs", Category: "Functional Training Equipment"},
	{Name: "Weighted Bags", Category: "Functional Training Equipment"},
	{Name: "Boxing Gloves", Category: "Miscellaneous"},
	{Name: "Heart Rate Monitor", Category: "Miscellaneous"},
	{Name: "Weighted Jump Rope", Category: "Miscellaneous"},
	{Name: "Gymnastic Rings", Category: "Miscellaneous"},
	{Name: "Aerobic Stepper", Category: "Miscellaneous"},
	{Name: "Chalk or Chalk Balls", Category: "Miscellaneous"},
	{Name: "Exercise Ball (Stability Ball)", Category: "Miscellaneous"},
}

// StarterLocation is a seeded location and the equipment categories it gets.
type StarterLocation struct {
	Name       string
	Category   string
	Categories []string
}

var StarterLocations = []StarterLocation{
	{Name: "Standard Gym", Category: "Gym", Categories: []string{"Gym Cardio Machines", "Gym Strength Machines", "Gym Free Weights", "Gym Benches and Racks"}},
	{Name: "Standard Park/Playground", Category: "Park", Categories: []string{"Public Park Equipment"}},
	{Name: "Standard Crossfit Gym", Category: "Crossfit", Categories: []string{"CrossFit Equipment", "Gym Free Weights"}},
}
