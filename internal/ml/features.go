package ml

// Feature positions inside the vector. The classifier is trained against this
// exact ordering; changing it silently corrupts every prediction.
const (
	FeatAttendance = iota
	FeatAverageGrade
	FeatFeeOverdue
	FeatFamilySupport
	FeatStudyHours
	FeatExtracurricular
	FeatMentalHealth
	FeatFinancialDifficulty

	NumFeatures
)

// Defaults substituted for signals missing from the input.
const (
	DefaultAttendance          = 80
	DefaultAverageGrade        = 75
	DefaultFamilySupport       = 3
	DefaultStudyHours          = 4
	DefaultExtracurricular     = 2
	DefaultMentalHealth        = 3
	DefaultFinancialDifficulty = 2
)

// FeatureVector is the fixed-order numeric encoding consumed by the classifier.
type FeatureVector [NumFeatures]float64

// StudentSignals carries the raw per-student inputs. Nil fields mean the
// signal was never recorded and the documented default applies.
type StudentSignals struct {
	AttendancePercentage *float64
	AverageGrade         *float64
	FeeStatus            string
	FamilySupport        *float64
	StudyHours           *float64
	Extracurricular      *float64
	MentalHealth         *float64
	FinancialDifficulty  *float64
}

// ExtractFeatures maps raw student signals into the fixed feature vector,
// substituting defaults for anything absent. It never fails.
func ExtractFeatures(s StudentSignals) FeatureVector {
	var v FeatureVector
	v[FeatAttendance] = orDefault(s.AttendancePercentage, DefaultAttendance)
	v[FeatAverageGrade] = orDefault(s.AverageGrade, DefaultAverageGrade)
	if s.FeeStatus == "overdue" {
		v[FeatFeeOverdue] = 1
	}
	v[FeatFamilySupport] = orDefault(s.FamilySupport, DefaultFamilySupport)
	v[FeatStudyHours] = orDefault(s.StudyHours, DefaultStudyHours)
	v[FeatExtracurricular] = orDefault(s.Extracurricular, DefaultExtracurricular)
	v[FeatMentalHealth] = orDefault(s.MentalHealth, DefaultMentalHealth)
	v[FeatFinancialDifficulty] = orDefault(s.FinancialDifficulty, DefaultFinancialDifficulty)
	return v
}

func orDefault(value *float64, fallback float64) float64 {
	if value == nil {
		return fallback
	}
	return *value
}
