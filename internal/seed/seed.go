// Package seed populates a database with demonstration data: a small staff
// roster, a cohort of students with six months of academic history, and a few
// pre-existing alerts. The generator is deterministic so repeated runs on a
// fresh database produce the same records.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/dropfixer/dropfixer-api/internal/models"
)

const (
	demoPassword = "demo123"
	rngSeed      = 2024
)

var staffAccounts = []struct {
	Name  string
	Email string
	Role  string
}{
	{"Admin User", "admin@demo.com", models.RoleAdmin},
	{"Sarah Wilson", "teacher@demo.com", models.RoleTeacher},
	{"Dr. Mike Chen", "counselor@demo.com", models.RoleCounselor},
}

var studentNames = []string{
	"Rahul Sharma",
	"Priya Patel", "Amit Kumar", "Sneha Singh", "Vikram Joshi", "Anita Gupta",
	"Ravi Verma", "Pooja Sharma", "Arun Reddy", "Kavya Nair", "Deepak Singh",
	"Meera Jain", "Suresh Kumar", "Nidhi Agarwal", "Rohit Gupta", "Sunita Rao",
	"Ajay Sharma", "Preeti Singh", "Manoj Kumar", "Geeta Devi", "Rakesh Jain",
}

var highRiskStudents = map[string]bool{"Rahul Sharma": true, "Sneha Singh": true}
var mediumRiskStudents = map[string]bool{"Priya Patel": true, "Vikram Joshi": true}

var months = []string{"January", "February", "March", "April", "May", "June"}
var subjects = []string{"Mathematics", "Physics", "Chemistry", "English", "Computer Science", "Biology"}
var semesters = []string{"Fall 2023", "Spring 2024"}
var surveyTypes = []string{"academic_satisfaction", "mental_health_check", "career_interests"}

var highRiskAlertMessages = []string{
	"Student showing signs of academic distress - immediate intervention recommended",
	"Multiple risk factors detected - contact family and counselor",
	"Attendance and performance declining rapidly",
	"Financial difficulties affecting academic performance",
}

var mediumRiskAlertMessages = []string{
	"Student attendance below optimal levels",
	"Grade performance showing concerning trends",
	"Recommended for additional academic support",
	"Monitor closely for risk escalation",
}

// Run drops the application tables, recreates them, and fills them with
// demonstration data.
func Run(db *gorm.DB, logger zerolog.Logger) error {
	if err := resetSchema(db); err != nil {
		return fmt.Errorf("reset schema: %w", err)
	}

	rng := rand.New(rand.NewSource(rngSeed))

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	students, err := createUsers(db, rng, string(hash))
	if err != nil {
		return fmt.Errorf("create users: %w", err)
	}
	logger.Info().Int("students", len(students)).Msg("users created")

	if err := createAttendance(db, rng, students); err != nil {
		return fmt.Errorf("create attendance: %w", err)
	}
	if err := createGrades(db, rng, students); err != nil {
		return fmt.Errorf("create grades: %w", err)
	}
	if err := createFees(db, rng, students); err != nil {
		return fmt.Errorf("create fees: %w", err)
	}
	if err := createSurveys(db, rng, students); err != nil {
		return fmt.Errorf("create surveys: %w", err)
	}
	if err := createAlerts(db, rng, students); err != nil {
		return fmt.Errorf("create alerts: %w", err)
	}

	logger.Info().Msg("database seeded")
	for _, account := range staffAccounts {
		logger.Info().Str("role", account.Role).Str("email", account.Email).Msg("demo login")
	}
	logger.Info().Str("role", models.RoleStudent).Str("email", "student@demo.com").Msg("demo login")

	return nil
}

func resetSchema(db *gorm.DB) error {
	tables := []interface{}{
		&models.Alert{},
		&models.Survey{},
		&models.Fee{},
		&models.Grade{},
		&models.Attendance{},
		&models.User{},
	}
	if err := db.Migrator().DropTable(tables...); err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.User{},
		&models.Attendance{},
		&models.Grade{},
		&models.Fee{},
		&models.Survey{},
		&models.Alert{},
	)
}

func createUsers(db *gorm.DB, rng *rand.Rand, passwordHash string) ([]models.User, error) {
	now := time.Now().UTC()
	users := make([]models.User, 0, len(staffAccounts)+len(studentNames))

	for _, account := range staffAccounts {
		lastLogin := now.AddDate(0, 0, -rng.Intn(8))
		users = append(users, models.User{
			Name:         account.Name,
			Email:        account.Email,
			PasswordHash: passwordHash,
			Role:         account.Role,
			LastLogin:    &lastLogin,
		})
	}

	for i, name := range studentNames {
		email := fmt.Sprintf("student%d@demo.com", i+1)
		if i == 0 {
			email = "student@demo.com"
		}
		lastLogin := now.AddDate(0, 0, -rng.Intn(11))
		users = append(users, models.User{
			Name:         name,
			Email:        email,
			PasswordHash: passwordHash,
			Role:         models.RoleStudent,
			LastLogin:    &lastLogin,
		})
	}

	if err := db.Create(&users).Error; err != nil {
		return nil, err
	}

	students := make([]models.User, 0, len(studentNames))
	for _, user := range users {
		if user.IsStudent() {
			students = append(students, user)
		}
	}
	return students, nil
}

func createAttendance(db *gorm.DB, rng *rand.Rand, students []models.User) error {
	records := make([]models.Attendance, 0, len(students)*len(months))
	for _, student := range students {
		for _, month := range months {
			var pct float64
			switch {
			case highRiskStudents[student.Name]:
				pct = uniform(rng, 50, 70)
			case mediumRiskStudents[student.Name]:
				pct = uniform(rng, 75, 85)
			default:
				pct = uniform(rng, 85, 98)
			}
			records = append(records, models.Attendance{
				StudentID:  student.ID,
				Percentage: round2(pct),
				Month:      month,
				Year:       2024,
				CreatedAt:  daysAgo(rng, 180),
			})
		}
	}
	return db.CreateInBatches(&records, 100).Error
}

func createGrades(db *gorm.DB, rng *rand.Rand, students []models.User) error {
	var records []models.Grade
	for _, student := range students {
		for _, semester := range semesters {
			for _, subject := range sample(rng, subjects, 4+rng.Intn(3)) {
				var score float64
				switch {
				case highRiskStudents[student.Name]:
					score = uniform(rng, 60, 75)
				case mediumRiskStudents[student.Name]:
					score = uniform(rng, 75, 85)
				default:
					score = uniform(rng, 80, 95)
				}
				records = append(records, models.Grade{
					StudentID: student.ID,
					Subject:   subject,
					Score:     round2(score),
					Semester:  semester,
					Year:      2024,
					CreatedAt: daysAgo(rng, 120),
				})
			}
		}
	}
	return db.CreateInBatches(&records, 100).Error
}

func createFees(db *gorm.DB, rng *rand.Rand, students []models.User) error {
	var records []models.Fee
	for _, student := range students {
		count := 2 + rng.Intn(3)
		for i := 0; i < count; i++ {
			var status string
			if highRiskStudents[student.Name] {
				status = pick(rng, []string{models.FeeStatusPending, models.FeeStatusOverdue, models.FeeStatusOverdue, models.FeeStatusPaid})
			} else {
				status = pick(rng, []string{models.FeeStatusPaid, models.FeeStatusPaid, models.FeeStatusPaid, models.FeeStatusPending})
			}

			amountDue := uniform(rng, 5000, 15000)
			amountPaid := amountDue * uniform(rng, 0, 0.7)
			if status == models.FeeStatusPaid {
				amountPaid = amountDue
			}

			records = append(records, models.Fee{
				StudentID:  student.ID,
				Status:     status,
				AmountDue:  round2(amountDue),
				AmountPaid: round2(amountPaid),
				DueDate:    time.Now().UTC().AddDate(0, 0, rng.Intn(91)-30),
				CreatedAt:  daysAgo(rng, 90),
			})
		}
	}
	return db.CreateInBatches(&records, 100).Error
}

func createSurveys(db *gorm.DB, rng *rand.Rand, students []models.User) error {
	var records []models.Survey
	for _, student := range students {
		for _, surveyType := range sample(rng, surveyTypes, 1+rng.Intn(3)) {
			records = append(records, models.Survey{
				StudentID:   student.ID,
				Responses:   surveyResponses(rng, student.Name),
				SurveyType:  surveyType,
				CompletedAt: daysAgo(rng, 60),
			})
		}
	}
	return db.CreateInBatches(&records, 100).Error
}

func surveyResponses(rng *rand.Rand, name string) datatypes.JSONMap {
	switch {
	case highRiskStudents[name]:
		return datatypes.JSONMap{
			"family_support":        between(rng, 1, 2),
			"study_hours":           between(rng, 1, 3),
			"extracurricular":       between(rng, 0, 1),
			"mental_health":         between(rng, 1, 2),
			"financial_difficulty":  between(rng, 4, 5),
			"academic_satisfaction": between(rng, 1, 3),
		}
	case mediumRiskStudents[name]:
		return datatypes.JSONMap{
			"family_support":        between(rng, 2, 4),
			"study_hours":           between(rng, 3, 5),
			"extracurricular":       between(rng, 1, 3),
			"mental_health":         between(rng, 2, 4),
			"financial_difficulty":  between(rng, 2, 4),
			"academic_satisfaction": between(rng, 3, 4),
		}
	default:
		return datatypes.JSONMap{
			"family_support":        between(rng, 4, 5),
			"study_hours":           between(rng, 4, 6),
			"extracurricular":       between(rng, 2, 5),
			"mental_health":         between(rng, 4, 5),
			"financial_difficulty":  between(rng, 1, 2),
			"academic_satisfaction": between(rng, 4, 5),
		}
	}
}

func createAlerts(db *gorm.DB, rng *rand.Rand, students []models.User) error {
	var records []models.Alert
	for _, student := range students {
		switch {
		case highRiskStudents[student.Name]:
			records = append(records, models.Alert{
				StudentID:    student.ID,
				RiskLevel:    models.RiskHigh,
				Message:      fmt.Sprintf("%s: %s", student.Name, pick(rng, highRiskAlertMessages)),
				Acknowledged: rng.Intn(2) == 1,
				CreatedAt:    daysAgo(rng, 7),
			})
		case mediumRiskStudents[student.Name]:
			if rng.Float64() > 0.5 {
				records = append(records, models.Alert{
					StudentID:    student.ID,
					RiskLevel:    models.RiskMedium,
					Message:      fmt.Sprintf("%s: %s", student.Name, pick(rng, mediumRiskAlertMessages)),
					Acknowledged: rng.Intn(2) == 1,
					CreatedAt:    daysAgo(rng, 14),
				})
			}
		}
	}
	if len(records) == 0 {
		return nil
	}
	return db.Create(&records).Error
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// between returns an integer in [lo, hi] as a float64, matching how JSON
// numbers come back out of the responses column.
func between(rng *rand.Rand, lo, hi int) float64 {
	return float64(lo + rng.Intn(hi-lo+1))
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

func daysAgo(rng *rand.Rand, max int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -rng.Intn(max+1))
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}

func sample(rng *rand.Rand, options []string, n int) []string {
	perm := rng.Perm(len(options))
	if n > len(options) {
		n = len(options)
	}
	out := make([]string, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, options[idx])
	}
	return out
}
