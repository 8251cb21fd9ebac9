package sessionpack

import (
	"errors"
	"net/http"
	"strconv"

	"ptslot/internal/api"
	"ptslot/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      List my session packs
// @Description  Packs oldest first, with the total remaining and the pack the next check-in uses
// @Tags         packs
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} sessionpack.PacksResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /me/packs [get]
func (h *Handler) MyPacks(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.service.MyPacks(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch session packs"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary      Issue a session pack
// @Tags         admin,packs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Param        request body sessionpack.IssuePackRequest true "Pack size"
// @Success      201 {object} sessionpack.SessionPack
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/members/{memberID}/packs [post]
func (h *Handler) IssuePack(c *gin.Context) {
	memberID, ok := memberIDParam(c)
	if !ok {
		return
	}

	var req IssuePackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	pack, err := h.service.IssuePack(c.Request.Context(), memberID, req)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to issue session pack"})
		return
	}

	c.JSON(http.StatusCreated, pack)
}

// @Summary      Check a member in
// @Description  Consumes one session from the member's oldest pack with sessions left
// @Tags         admin,packs
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Success      200 {object} sessionpack.CheckinResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/members/{memberID}/checkin [post]
func (h *Handler) CheckIn(c *gin.Context) {
	memberID, ok := memberIDParam(c)
	if !ok {
		return
	}

	resp, err := h.service.CheckIn(c.Request.Context(), memberID)
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		case errors.Is(err, ErrNoRemainingSessions):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Member has no remaining sessions", Code: "no_remaining_sessions"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to check in"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

func memberIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("memberID"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return 0, false
	}
	return id, true
}
