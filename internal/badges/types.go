package badges

// Badge is a permanent achievement. Its value is the name stored in the
// progress file.
type Badge string

const (
	LessonMaster Badge = "Lesson Master"
	QuizChamp    Badge = "Quiz Champ"
	StreakStar   Badge = "Streak Star"
)

// StreakStarThreshold is the streak length that unlocks Streak Star.
const StreakStarThreshold = 7

// All returns every badge in display order.
func All() []Badge {
	return []Badge{LessonMaster, QuizChamp, StreakStar}
}

// Icon returns the display icon for the badge.
func (b Badge) Icon() string {
	switch b {
	case LessonMaster:
		return "📘"
	case QuizChamp:
		return "🏆"
	case StreakStar:
		return "🔥"
	default:
		return "✦"
	}
}

// Description explains how the badge is earned.
func (b Badge) Description() string {
	switch b {
	case LessonMaster:
		return "Complete every lesson"
	case QuizChamp:
		return "Get a perfect score on a quiz"
	case StreakStar:
		return "Learn 7 days in a row"
	default:
		return ""
	}
}
