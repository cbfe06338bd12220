package controllers

import (
	"log"
	"strconv"

	"opina/db"
	"opina/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DashboardMetrics summarizes survey volume and sentiment distribution for
// the manager dashboard.
func DashboardMetrics(ctx *gin.Context) {
	counts, err := db.SentimentCounts(ctx.Request.Context())
	if err != nil {
		log.Println("Error aggregating sentiment counts:", err)
		ctx.JSON(500, gin.H{"error": "Failed to load metrics"})
		return
	}

	total := counts["positive"] + counts["negative"] + counts["neutral"]
	alertCount, _, err := alertTotals(ctx)
	if err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to load metrics"})
		return
	}

	metrics := gin.H{
		"totalAnalyzed": total,
		"sentiments": gin.H{
			"positive": counts["positive"],
			"negative": counts["negative"],
			"neutral":  counts["neutral"],
		},
		"alerts": alertCount,
	}
	if total > 0 {
		metrics["negativeRate"] = float64(counts["negative"]) / float64(total)
		metrics["positiveRate"] = float64(counts["positive"]) / float64(total)
	}

	ctx.JSON(200, gin.H{"metrics": metrics})
}

func alertTotals(ctx *gin.Context) (int64, []models.SentimentAnalysis, error) {
	analyses, total, err := db.ListAnalyses(ctx.Request.Context(), db.AnalysisFilter{
		AlertOnly: true,
		Page:      1,
		PageSize:  10,
	})
	if err != nil {
		log.Println("Error listing alerts:", err)
		return 0, nil, err
	}
	return total, analyses, nil
}

// ListAnalyses returns paginated sentiment analyses with optional filters:
// ?sentiment=negative&alertOnly=true&page=2&pageSize=50
func ListAnalyses(ctx *gin.Context) {
	filter := db.AnalysisFilter{
		Sentiment:   ctx.Query("sentiment"),
		ProductType: ctx.Query("productType"),
		AlertOnly:   ctx.Query("alertOnly") == "true",
	}
	if page, err := strconv.ParseInt(ctx.DefaultQuery("page", "1"), 10, 64); err == nil {
		filter.Page = page
	}
	if size, err := strconv.ParseInt(ctx.DefaultQuery("pageSize", "20"), 10, 64); err == nil {
		filter.PageSize = size
	}

	analyses, total, err := db.ListAnalyses(ctx.Request.Context(), filter)
	if err != nil {
		log.Println("Error listing analyses:", err)
		ctx.JSON(500, gin.H{"error": "Failed to list analyses"})
		return
	}
	if analyses == nil {
		analyses = []models.SentimentAnalysis{}
	}

	ctx.JSON(200, gin.H{
		"analyses": analyses,
		"total":    total,
		"page":     filter.Page,
		"pageSize": filter.PageSize,
	})
}

// RecentAlerts returns the latest dissatisfaction alerts with survey context.
func RecentAlerts(ctx *gin.Context) {
	_, analyses, err := alertTotals(ctx)
	if err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to list alerts"})
		return
	}

	alerts := make([]gin.H, 0, len(analyses))
	for _, analysis := range analyses {
		entry := gin.H{
			"analysis": analysis,
		}
		if survey, err := db.GetSurveyByID(ctx.Request.Context(), analysis.SurveyID); err == nil {
			entry["survey"] = gin.H{
				"uuid":         survey.UUID,
				"clientName":   survey.ClientName,
				"clientCode":   survey.ClientCode,
				"productType":  survey.ProductType,
				"trainingName": survey.TrainingName,
				"agentName":    survey.AgentName,
			}
		}
		alerts = append(alerts, entry)
	}

	ctx.JSON(200, gin.H{"alerts": alerts})
}

// GetSurveyDetail returns one survey with its answers and analysis for the
// dashboard drill-down view.
func GetSurveyDetail(ctx *gin.Context) {
	surveyID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid survey id"})
		return
	}

	survey, err := db.GetSurveyByID(ctx.Request.Context(), surveyID)
	if err != nil {
		ctx.JSON(404, gin.H{"error": "Survey not found"})
		return
	}

	answers, err := db.ListAnswersBySurvey(ctx.Request.Context(), surveyID)
	if err != nil {
		log.Println("Error loading answers:", err)
		ctx.JSON(500, gin.H{"error": "Failed to load survey detail"})
		return
	}

	response := gin.H{
		"survey":  survey,
		"answers": answers,
	}
	if analysis, err := db.GetAnalysisBySurvey(ctx.Request.Context(), surveyID); err == nil {
		response["analysis"] = analysis
	}

	ctx.JSON(200, response)
}
