package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"cardroom.io/holdem/game"
	"cardroom.io/holdem/manager"
	"cardroom.io/holdem/nats"
	"cardroom.io/holdem/store"
)

var restLogger = log.With().Str("logger_name", "rest::rest").Logger()

// Submitted actions are throttled well above any human pace; the limiter
// only guards against misbehaving clients hammering the CAS loop.
const actionRatePerSec = 10
const actionBurst = 5

type appError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Server struct {
	manager     *manager.Manager
	broadcaster *nats.Broadcaster
	limiters    *tableLimiters
}

func NewServer(m *manager.Manager, broadcaster *nats.Broadcaster) *Server {
	return &Server{
		manager:     m,
		broadcaster: broadcaster,
		limiters:    newTableLimiters(rate.Limit(actionRatePerSec), actionBurst),
	}
}

// Handler builds the HTTP routes.
func (s *Server) Handler() *gin.Engine {
	r := gin.Default()

	r.POST("/tables", s.createTable)
	r.GET("/tables/:code", s.getTable)
	r.GET("/table-ids/:id", s.getTableByID)
	r.POST("/tables/:code/join", s.joinTable)
	r.POST("/tables/:code/leave", s.leaveTable)
	r.POST("/tables/:code/start", s.startHand)
	r.POST("/tables/:code/action", s.submitAction)
	r.GET("/tables/:code/ws", s.watchTable)

	return r
}

// Run blocks serving the HTTP API.
func (s *Server) Run(port int) error {
	return s.Handler().Run(fmt.Sprintf(":%d", port))
}

type createTableReq struct {
	SmallBlind int64 `json:"smallBlind" binding:"required"`
	BigBlind   int64 `json:"bigBlind" binding:"required"`
}

func (s *Server) createTable(c *gin.Context) {
	var req createTableReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, appError{Code: http.StatusBadRequest, Message: err.Error()})
		return
	}
	table, err := s.manager.CreateTable(c.Request.Context(), req.SmallBlind, req.BigBlind)
	if err != nil {
		restLogger.Error().Msgf("Unable to create table: %v", err)
		c.JSON(http.StatusInternalServerError, appError{Code: http.StatusInternalServerError, Message: "Unable to create table"})
		return
	}
	c.JSON(http.StatusOK, table)
}

func (s *Server) getTable(c *gin.Context) {
	table, err := s.manager.GetTable(c.Request.Context(), c.Param("code"))
	if err != nil {
		s.reportError(c, err)
		return
	}
	c.JSON(http.StatusOK, table)
}

func (s *Server) getTableByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, appError{Code: http.StatusBadRequest, Message: "Invalid table id"})
		return
	}
	table, err := s.manager.GetTableByID(c.Request.Context(), id)
	if err != nil {
		s.reportError(c, err)
		return
	}
	c.JSON(http.StatusOK, table)
}

type joinTableReq struct {
	Name  string `json:"name" binding:"required"`
	BuyIn int64  `json:"buyIn" binding:"required"`
}

type joinTableResp struct {
	PlayerID string      `json:"playerId"`
	Table    *game.Table `json:"table"`
}

func (s *Server) joinTable(c *gin.Context) {
	var req joinTableReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, appError{Code: http.StatusBadRequest, Message: err.Error()})
		return
	}
	playerID := uuid.New().String()
	table, err := s.manager.JoinTable(c.Request.Context(), c.Param("code"), playerID, req.Name, req.BuyIn)
	if err != nil {
		s.reportError(c, err)
		return
	}
	c.JSON(http.StatusOK, joinTableResp{PlayerID: playerID, Table: table})
}

type leaveTableReq struct {
	PlayerID string `json:"playerId" binding:"required"`
}

func (s *Server) leaveTable(c *gin.Context) {
	var req leaveTableReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, appError{Code: http.StatusBadRequest, Message: err.Error()})
		return
	}
	if err := s.manager.LeaveTable(c.Request.Context(), c.Param("code"), req.PlayerID); err != nil {
		s.reportError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) startHand(c *gin.Context) {
	table, err := s.manager.StartHand(c.Request.Context(), c.Param("code"))
	if err != nil {
		s.reportError(c, err)
		return
	}
	c.JSON(http.StatusOK, table)
}

type actionReq struct {
	PlayerID string `json:"playerId" binding:"required"`
	Action   string `json:"action" binding:"required"`
	Amount   int64  `json:"amount"`
}

func (s *Server) submitAction(c *gin.Context) {
	code := c.Param("code")
	if !s.limiters.allow(code) {
		c.JSON(http.StatusTooManyRequests, appError{Code: http.StatusTooManyRequests, Message: "Too many actions"})
		return
	}
	var req actionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, appError{Code: http.StatusBadRequest, Message: err.Error()})
		return
	}
	kind, err := game.ParseActionKind(req.Action)
	if err != nil {
		c.JSON(http.StatusBadRequest, appError{Code: http.StatusBadRequest, Message: err.Error()})
		return
	}
	table, err := s.manager.SubmitAction(c.Request.Context(), code, req.PlayerID,
		game.Action{Kind: kind, Amount: req.Amount})
	if err != nil {
		s.reportError(c, err)
		return
	}
	c.JSON(http.StatusOK, table)
}

func (s *Server) reportError(c *gin.Context, err error) {
	switch err.(type) {
	case game.TableBusyError, game.SeatTakenError, game.InsufficientPlayersError, game.InvalidActionError:
		c.JSON(http.StatusConflict, appError{Code: http.StatusConflict, Message: err.Error()})
		return
	case game.PlayerNotFoundError:
		c.JSON(http.StatusNotFound, appError{Code: http.StatusNotFound, Message: err.Error()})
		return
	}
	if err == store.ErrTableNotFound {
		c.JSON(http.StatusNotFound, appError{Code: http.StatusNotFound, Message: "Table not found"})
		return
	}
	restLogger.Error().Msgf("Request failed: %v", err)
	c.JSON(http.StatusInternalServerError, appError{Code: http.StatusInternalServerError, Message: "Internal error"})
}
