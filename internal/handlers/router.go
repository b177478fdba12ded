package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/services"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/utils"
)

type HandlerManager struct {
	trainingHandler *TrainingHandler
	wordHandler     *WordHandler
	studentHandler  *StudentHandler
	messageHandler  *MessageHandler
	exportHandler   *ExportHandler

	authMiddleware gin.HandlerFunc
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *utils.Validator,
	logger utils.Logger,
	authMiddleware gin.HandlerFunc,
) *HandlerManager {
	return &HandlerManager{
		trainingHandler: NewTrainingHandler(serviceManager.Training(), validator, logger),
		wordHandler:     NewWordHandler(serviceManager.Word(), validator, logger),
		studentHandler:  NewStudentHandler(serviceManager.Student(), validator, logger),
		messageHandler:  NewMessageHandler(serviceManager.Message(), validator, logger),
		exportHandler:   NewExportHandler(serviceManager.Export(), logger),
		authMiddleware:  authMiddleware,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "vocab-training-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware)
	{
		// Training routes
		training := v1.Group("/training")
		{
			training.GET("/words", hm.trainingHandler.GetTrainingWords)
			training.GET("/review", hm.trainingHandler.GetReviewWords)
			training.POST("/submit", hm.trainingHandler.SubmitTrainingResult)
			training.GET("/statistics", hm.trainingHandler.GetStudentStatistics)
		}

		// Word bank routes
		words := v1.Group("/words")
		{
			words.POST("", hm.wordHandler.CreateWord)
			words.GET("", hm.wordHandler.ListWords)
			words.GET("/levels", hm.wordHandler.GetLevelCounts)
			words.GET("/:id", hm.wordHandler.GetWord)
			words.PUT("/:id", hm.wordHandler.UpdateWord)
			words.DELETE("/:id", hm.wordHandler.DeleteWord)
		}

		// Student routes
		students := v1.Group("/students")
		{
			students.POST("", hm.studentHandler.RegisterStudent)
			students.GET("", hm.studentHandler.ListStudents)
			students.POST("/login", hm.studentHandler.RecordLogin)
			students.GET("/:student_id", hm.studentHandler.GetStudent)
			students.POST("/:student_id/deactivate", hm.studentHandler.DeactivateStudent)
		}

		// Message routes
		messages := v1.Group("/messages")
		{
			messages.POST("", hm.messageHandler.BroadcastMessage)
			messages.GET("", hm.messageHandler.ListMessages)
			messages.GET("/:id", hm.messageHandler.GetMessage)
			messages.DELETE("/:id", hm.messageHandler.DeleteMessage)
		}

		// Export routes
		export := v1.Group("/export")
		{
			export.GET("/words", hm.exportHandler.ExportWords)
			export.GET("/statistics", hm.exportHandler.ExportStatistics)
		}
	}
}
