// Package server exposes the calculation engine over a small stateless JSON
// API. There is no persistence and no auth; callers ship a full FinanceState
// snapshot with every request.
package server

import (
	"fmt"

	"github.com/arthayojana/arthayojana/internal/calculation"
	"github.com/arthayojana/arthayojana/internal/config"
	"github.com/arthayojana/arthayojana/internal/domain"
	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Server wires the engine to fasthttp.
type Server struct {
	engine *calculation.CalculationEngine
	parser *config.InputParser
	logger *zap.Logger
}

// New creates a server. A nil logger is replaced with a no-op logger.
func New(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		engine: calculation.NewCalculationEngine(logger),
		parser: config.NewInputParser(),
		logger: logger,
	}
}

// ProjectionRequest carries a snapshot plus the anchor year for projection
// and audit calls.
type ProjectionRequest struct {
	State       domain.FinanceState `json:"state"`
	CurrentYear int                 `json:"currentYear"`
}

// ProjectionResponse wraps the computed timeline.
type ProjectionResponse struct {
	Timeline []domain.TimelineRow `json:"timeline"`
}

// AmortizationRequest carries one loan plus what-if options.
type AmortizationRequest struct {
	Loan         domain.Loan     `json:"loan"`
	CurrentYear  int             `json:"currentYear"`
	ExtraPayment decimal.Decimal `json:"extraPayment"`
}

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Handler routes API requests.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	if !ctx.IsPost() {
		s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		return
	}
	switch path {
	case "/v1/projection":
		s.handleProjection(ctx)
	case "/v1/audit":
		s.handleAudit(ctx)
	case "/v1/amortization":
		s.handleAmortization(ctx)
	default:
		s.writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

// ListenAndServe blocks serving the API on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("serving planning API", zap.String("addr", addr))
	return fasthttp.ListenAndServe(addr, s.Handler)
}

func (s *Server) decodeProjectionRequest(ctx *fasthttp.RequestCtx) (*ProjectionRequest, bool) {
	var req ProjectionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return nil, false
	}
	if req.CurrentYear <= 0 {
		s.writeError(ctx, fasthttp.StatusBadRequest, "currentYear is required")
		return nil, false
	}
	s.parser.AssignIDs(&req.State)
	if err := s.parser.ValidateState(&req.State, req.CurrentYear); err != nil {
		s.writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
		return nil, false
	}
	return &req, true
}

func (s *Server) handleProjection(ctx *fasthttp.RequestCtx) {
	req, ok := s.decodeProjectionRequest(ctx)
	if !ok {
		return
	}
	timeline := s.engine.ProjectTimeline(&req.State, req.CurrentYear)
	s.writeJSON(ctx, fasthttp.StatusOK, ProjectionResponse{Timeline: timeline})
}

func (s *Server) handleAudit(ctx *fasthttp.RequestCtx) {
	req, ok := s.decodeProjectionRequest(ctx)
	if !ok {
		return
	}
	report := s.engine.Audit(&req.State, req.CurrentYear)
	s.writeJSON(ctx, fasthttp.StatusOK, report)
}

func (s *Server) handleAmortization(ctx *fasthttp.RequestCtx) {
	var req AmortizationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	schedule := calculation.BuildAmortizationSchedule(&req.Loan, calculation.ScheduleOptions{
		ExtraPayment: req.ExtraPayment,
		CurrentYear:  req.CurrentYear,
	})
	s.writeJSON(ctx, fasthttp.StatusOK, schedule)
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encoding response failed", zap.Error(err))
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		fmt.Fprintf(ctx, `{"status":500,"message":"encoding failed"}`)
		return
	}
	ctx.SetBody(body)
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(errorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
