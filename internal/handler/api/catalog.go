package api

import (
	"net/http"
	"strconv"

	reqdto "campus-booking/internal/handler/dto/request"
	resdto "campus-booking/internal/handler/dto/response"
	"campus-booking/internal/usecase/commands"
	"campus-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	catalogQueries  queries.CatalogQueries
	contentCommands commands.ContentCommands
}

func NewCatalogHandler(catalogQueries queries.CatalogQueries, contentCommands commands.ContentCommands) *CatalogHandler {
	return &CatalogHandler{
		catalogQueries:  catalogQueries,
		contentCommands: contentCommands,
	}
}

// @Summary List rooms
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.RoomResponse
// @Router /rooms [get]
func (h *CatalogHandler) ListRooms(c *gin.Context) {
	rooms, err := h.catalogQueries.ListRooms(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomViews(rooms))
}

// @Summary Get room
// @Tags catalog
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} resdto.RoomResponse
// @Failure 404 {object} map[string]string
// @Router /rooms/{id} [get]
func (h *CatalogHandler) GetRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID format"})
		return
	}

	room, err := h.catalogQueries.GetRoom(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomView(room))
}

// @Summary List room ratings
// @Tags catalog
// @Produce json
// @Param id path string true "Room ID"
// @Param limit query int false "Max results"
// @Success 200 {array} resdto.RatingResponse
// @Router /rooms/{id}/ratings [get]
func (h *CatalogHandler) RoomRatings(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID format"})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	ratings, err := h.catalogQueries.ListRoomRatings(c.Request.Context(), id, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRatingViews(ratings))
}

// @Summary List time slots
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.SlotResponse
// @Router /slots [get]
func (h *CatalogHandler) ListSlots(c *gin.Context) {
	slots, err := h.catalogQueries.ListSlots(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotViews(slots))
}

// @Summary List articles
// @Tags catalog
// @Produce json
// @Param limit query int false "Max results"
// @Success 200 {array} resdto.ArticleResponse
// @Router /articles [get]
func (h *CatalogHandler) ListArticles(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	articles, err := h.catalogQueries.ListArticles(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromArticleViews(articles))
}

// @Summary List active banners
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.BannerResponse
// @Router /banners [get]
func (h *CatalogHandler) ListBanners(c *gin.Context) {
	banners, err := h.catalogQueries.ListBanners(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBannerViews(banners))
}

// @Summary Create room
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRoomRequest true "Room"
// @Success 201 {object} resdto.CreatedResponse
// @Router /rooms [post]
func (h *CatalogHandler) CreateRoom(c *gin.Context) {
	h.create(c, func(ctx *gin.Context) (uuid.UUID, error) {
		var req reqdto.CreateRoomRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			return uuid.Nil, errHandledBadRequest(ctx)
		}
		return h.contentCommands.CreateRoom(ctx.Request.Context(), req)
	})
}

// @Summary Create time slot
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSlotRequest true "Slot"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 422 {object} map[string]string
// @Router /slots [post]
func (h *CatalogHandler) CreateSlot(c *gin.Context) {
	h.create(c, func(ctx *gin.Context) (uuid.UUID, error) {
		var req reqdto.CreateSlotRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			return uuid.Nil, errHandledBadRequest(ctx)
		}
		return h.contentCommands.CreateSlot(ctx.Request.Context(), req)
	})
}

// @Summary Publish article
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateArticleRequest true "Article"
// @Success 201 {object} resdto.CreatedResponse
// @Router /articles [post]
func (h *CatalogHandler) CreateArticle(c *gin.Context) {
	h.create(c, func(ctx *gin.Context) (uuid.UUID, error) {
		var req reqdto.CreateArticleRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			return uuid.Nil, errHandledBadRequest(ctx)
		}
		return h.contentCommands.CreateArticle(ctx.Request.Context(), req)
	})
}

// @Summary Create banner
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBannerRequest true "Banner"
// @Success 201 {object} resdto.CreatedResponse
// @Router /banners [post]
func (h *CatalogHandler) CreateBanner(c *gin.Context) {
	h.create(c, func(ctx *gin.Context) (uuid.UUID, error) {
		var req reqdto.CreateBannerRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			return uuid.Nil, errHandledBadRequest(ctx)
		}
		return h.contentCommands.CreateBanner(ctx.Request.Context(), req)
	})
}

func errHandledBadRequest(c *gin.Context) error {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
	return errHandled
}

func (h *CatalogHandler) create(c *gin.Context, fn func(ctx *gin.Context) (uuid.UUID, error)) {
	id, err := fn(c)
	if err != nil {
		if err != errHandled {
			respondError(c, err)
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}
