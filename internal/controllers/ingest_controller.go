package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"deepdarshak/internal/config"
	"deepdarshak/internal/models"
	"deepdarshak/internal/pipeline"
)

// ingestInput is a raw AIS batch. Columns names the descriptive fields the
// source actually delivers; the validator only flags gaps in those.
type ingestInput struct {
	Columns []string             `json:"columns"`
	Rows    []models.RawPosition `json:"rows" binding:"required"`
}

// IngestPositions validates a raw position batch and persists the cleaned
// rows. Bad rows never fail the batch; they are dropped and counted.
func IngestPositions(c *gin.Context) {
	var input ingestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("IngestPositions: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	cleaned, dropped := pipeline.ValidateBatch(input.Rows, input.Columns)

	if len(cleaned) > 0 {
		if err := config.DB.CreateInBatches(&cleaned, 500).Error; err != nil {
			logrus.WithError(err).Error("IngestPositions: persist failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store batch: " + err.Error()})
			return
		}
	}

	logrus.WithFields(logrus.Fields{
		"received": len(input.Rows),
		"inserted": len(cleaned),
		"dropped":  dropped,
	}).Info("ingested position batch")

	c.JSON(http.StatusCreated, gin.H{
		"inserted": len(cleaned),
		"dropped":  dropped,
	})
}
