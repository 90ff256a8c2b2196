package handler

import (
	"errors"
	"net/http"

	"vr-therapy-platform/internal/usecase"
	"vr-therapy-platform/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type VRSceneHandler struct {
	log          *logrus.Logger
	sceneUsecase usecase.VRSceneUsecase
}

func NewVRSceneHandler(log *logrus.Logger, sceneUsecase usecase.VRSceneUsecase) *VRSceneHandler {
	return &VRSceneHandler{
		log:          log,
		sceneUsecase: sceneUsecase,
	}
}

// GetScenes lists the VR scene catalog
// @Summary List VR scenes
// @Tags Scenes
// @Produce json
// @Param category query string false "Filter by category (case-insensitive)"
// @Success 200 {object} response.Response
// @Router /scenes [get]
func (h *VRSceneHandler) GetScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := h.sceneUsecase.GetScenes(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		response.InternalServerError(w, "Failed to get VR scenes")
		return
	}

	response.Success(w, http.StatusOK, "VR scenes retrieved successfully", scenes)
}

// GetScene returns one VR scene with its default settings
// @Summary Get VR scene
// @Tags Scenes
// @Produce json
// @Param id path string true "Scene ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /scenes/{id} [get]
func (h *VRSceneHandler) GetScene(w http.ResponseWriter, r *http.Request) {
	scene, err := h.sceneUsecase.GetScene(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, usecase.ErrSceneNotFound) {
			response.NotFound(w, "VR scene not found")
			return
		}
		response.InternalServerError(w, "Failed to get VR scene")
		return
	}

	response.Success(w, http.StatusOK, "VR scene retrieved successfully", scene)
}
