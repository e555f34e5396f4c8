package ai

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dropfixer",
		Subsystem: "ai",
		Name:      "counsel_duration_seconds",
		Help:      "Duration of generative counselling requests",
	}, []string{"model"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dropfixer",
		Subsystem: "ai",
		Name:      "counsel_failures_total",
		Help:      "Number of failed generative counselling requests",
	}, []string{"model"})
)

// counselorSystemPrompt frames the model as an educational counselor in the
// requested language, capping responses at roughly 200 words.
func counselorSystemPrompt(language string) string {
	if language == "hi" {
		return "आप एक अनुभवी शैक्षिक परामर्शदाता हैं जो छात्रों की मदद करते हैं। " +
			"कृपया उपयोगी, सहानुभूतिपूर्ण और व्यावहारिक सलाह दें। यदि यह शैक्षणिक, करियर, " +
			"या मानसिक स्वास्थ्य से संबंधित है तो विशिष्ट सुझाव दें। उत्तर हिंदी में दें और 200 शब्दों से कम रखें।"
	}

	return "You are an experienced educational counselor helping students. " +
		"Provide helpful, empathetic, and practical advice. If the message relates to academics, " +
		"career, or mental health, give specific suggestions. Keep the response under 200 words and be supportive."
}

func counselorUserPrompt(message, language string) string {
	if language == "hi" {
		return fmt.Sprintf("संदेश: %s", message)
	}
	return fmt.Sprintf("Message: %s", message)
}
