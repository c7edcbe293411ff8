package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iot-backend/entities"
	"iot-backend/usecases"
)

type SensorHandler struct {
	useCase *usecases.TelemetryUseCase
}

func NewSensorHandler(useCase *usecases.TelemetryUseCase) *SensorHandler {
	return &SensorHandler{useCase: useCase}
}

// GetRecentReadings handles GET /api/sensors/:deviceId. Unknown device
// ids are not an error; they yield an empty array.
func (h *SensorHandler) GetRecentReadings(c *gin.Context) {
	id, ok := parseID(c, "deviceId")
	if !ok {
		return
	}

	readings, err := h.useCase.RecentReadings(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve readings"})
		return
	}
	if readings == nil {
		readings = []entities.SensorReading{}
	}
	c.JSON(http.StatusOK, readings)
}
