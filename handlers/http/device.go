package httpHandler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"iot-backend/entities"
	"iot-backend/usecases"
)

type DeviceHandler struct {
	useCase *usecases.DeviceUseCase
}

func NewDeviceHandler(useCase *usecases.DeviceUseCase) *DeviceHandler {
	return &DeviceHandler{useCase: useCase}
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid device id"})
		return 0, false
	}
	return uint(id), true
}

// GetAllDevices handles GET /api/devices
func (h *DeviceHandler) GetAllDevices(c *gin.Context) {
	devices, err := h.useCase.GetAllDevices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve devices"})
		return
	}
	if devices == nil {
		devices = []entities.Device{}
	}
	c.JSON(http.StatusOK, devices)
}

// CreateDevice handles POST /api/devices
func (h *DeviceHandler) CreateDevice(c *gin.Context) {
	var device entities.Device
	if err := c.ShouldBindJSON(&device); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.useCase.CreateDevice(&device); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, device)
}

type ledRequest struct {
	On *bool `json:"on"`
}

// SetLed handles POST /api/devices/:id/led
func (h *DeviceHandler) SetLed(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ledRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.On == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing parameter 'on' (true/false)"})
		return
	}

	if _, err := h.useCase.SetLed(id, *req.On); err != nil {
		h.writeError(c, err)
		return
	}

	if *req.On {
		c.String(http.StatusOK, "LED ON")
	} else {
		c.String(http.StatusOK, "LED OFF")
	}
}

type motorRequest struct {
	State *int `json:"state"`
}

// SetMotor handles POST /api/devices/:id/motor
func (h *DeviceHandler) SetMotor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req motorRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.State == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing parameter 'state', send JSON like {\"state\": -1|0|1}"})
		return
	}

	if _, err := h.useCase.SetMotor(id, *req.State); err != nil {
		h.writeError(c, err)
		return
	}

	c.String(http.StatusOK, "Motor state: %d", *req.State)
}

// DeleteDevice handles DELETE /api/devices/:id
func (h *DeviceHandler) DeleteDevice(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.useCase.DeleteDevice(id); err != nil {
		h.writeError(c, err)
		return
	}

	c.String(http.StatusOK, "deleted device id=%d and its action log", id)
}

// GetDeviceActions handles GET /api/devices/:id/actions
func (h *DeviceHandler) GetDeviceActions(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	actions, err := h.useCase.GetDeviceActions(id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if actions == nil {
		actions = []entities.DeviceAction{}
	}
	c.JSON(http.StatusOK, actions)
}

func (h *DeviceHandler) writeError(c *gin.Context, err error) {
	if errors.Is(err, usecases.ErrDeviceNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("device with id %s not found", c.Param("id"))})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
