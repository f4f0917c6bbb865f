package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gauthierbraillon/mediamix/internal/aggregator"
	"github.com/gauthierbraillon/mediamix/internal/app"
	"github.com/gauthierbraillon/mediamix/internal/download"
	"github.com/gauthierbraillon/mediamix/internal/media"
	"github.com/gauthierbraillon/mediamix/internal/pagination"
	"github.com/gauthierbraillon/mediamix/internal/prefs"
)

type handler struct {
	app *app.App
}

type queryRequest struct {
	Query string `json:"query"`
}

type categoryRequest struct {
	Name string `json:"name"`
}

type toggleRequest struct {
	Item *media.MediaItem `json:"item"`
	ID   string           `json:"id"`
}

type downloadRequest struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// GET /api/feed?kind=photo,video&limit=N&shuffle=true
func (h *handler) getFeed(c *gin.Context) {
	opts := aggregator.FeedOptions{}

	if raw := c.Query("kind"); raw != "" {
		for _, k := range strings.Split(raw, ",") {
			kind, err := media.ParseKind(k)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			opts.Kinds = append(opts.Kinds, kind)
		}
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		opts.Limit = n
	}
	opts.Shuffle = c.Query("shuffle") == "true"

	c.JSON(http.StatusOK, gin.H{
		"items": h.app.Feed.GetFeed(opts),
		"state": h.app.Driver.Snapshot(),
	})
}

func (h *handler) search(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	res, err := h.app.Search(c.Request.Context(), req.Query)
	h.respondLoad(c, res, err)
}

func (h *handler) category(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	res, err := h.app.SelectCategory(c.Request.Context(), req.Name)
	h.respondLoad(c, res, err)
}

func (h *handler) respondLoad(c *gin.Context, res aggregator.Result, err error) {
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":      res.Items,
		"state":      h.app.Driver.Snapshot(),
		"no_results": res.NoResults,
	})
}

func (h *handler) scroll(c *gin.Context) {
	loaded, res, err := h.app.Scroll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	items := res.Items
	if !loaded {
		items = h.app.Feed.Items()
	}
	c.JSON(http.StatusOK, gin.H{
		"loaded": loaded,
		"items":  items,
		"state":  h.app.Driver.Snapshot(),
	})
}

func (h *handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pagination.ErrStale):
		c.JSON(http.StatusConflict, gin.H{"error": "stale"})
	case errors.Is(err, pagination.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *handler) listFavorites(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items": h.app.Favorites.List(),
		"count": h.app.Favorites.Count(),
	})
}

// POST /api/favorites/toggle accepts a full item or just its id.
func (h *handler) toggleFavorite(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var (
		favorited bool
		err       error
	)
	switch {
	case req.Item != nil && req.Item.ID != "":
		favorited, err = h.app.ToggleFavorite(c.Request.Context(), *req.Item)
	case req.ID != "":
		favorited, _, err = h.app.ToggleFavoriteByID(c.Request.Context(), req.ID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "item or id is required"})
		return
	}

	if errors.Is(err, app.ErrUnknownItem) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorited": favorited, "count": h.app.Favorites.Count()})
}

func (h *handler) getTheme(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"theme": h.app.Prefs.Theme(c.Request.Context())})
}

func (h *handler) toggleTheme(c *gin.Context) {
	theme, err := h.app.ToggleTheme(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

func (h *handler) recent(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"recent": h.app.Prefs.Recent(c.Request.Context())})
}

func (h *handler) categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": prefs.DefaultRecent})
}

// POST /api/download saves the asset server-side and reports the path once.
func (h *handler) download(c *gin.Context) {
	var req downloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.app.Download(c.Request.Context(), req.URL, req.Name)
	if errors.Is(err, download.ErrNoURL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Download URL not available."})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": res.Path, "bytes": res.Bytes})
}

func (h *handler) clearCache(c *gin.Context) {
	removed, err := h.app.ClearCache(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed, "message": "Cache cleared (favorites & theme preserved)."})
}
