package external

import (
	"encoding/json"
	"net/http"
	"reportassist/sources/artificial"
	"reportassist/sources/platform"
	"reportassist/sources/resilience"
	"reportassist/sources/tracing"
	"strconv"
	"time"
)

const maxRequestBytes = 4 << 20

type healthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	BuildTime string `json:"buildTime"`
	Uptime    string `json:"uptime"`
	Circuit   string `json:"circuit"`
}

type resilienceResponse struct {
	Metrics resilience.ResilienceMetrics `json:"metrics"`
	Stats   string                       `json:"stats"`
}

type replyRequest struct {
	CallerID string             `json:"callerId"`
	Messages []platform.Message `json:"messages"`
	Document string             `json:"document"`
	Page     string             `json:"page"`
}

type replyResponse struct {
	OperationID       string  `json:"operationId"`
	Text              string  `json:"text,omitempty"`
	Notice            string  `json:"notice,omitempty"`
	Denied            bool    `json:"denied"`
	Degraded          bool    `json:"degraded"`
	RetryAfterSeconds int     `json:"retryAfterSeconds,omitempty"`
	Model             string  `json:"model,omitempty"`
	Complexity        string  `json:"complexity,omitempty"`
	Reasoning         string  `json:"reasoning,omitempty"`
	EstimatedCost     string  `json:"estimatedCost,omitempty"`
	ContextReduction  float64 `json:"contextReduction"`
}

func (x *Outsiders) health(w http.ResponseWriter, r *http.Request) {
	x.log.D("Outsider service got a ping", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)

	writeJSON(x.log, w, http.StatusOK, healthResponse{
		Status:    "ok",
		Service:   x.config.ServiceName,
		Version:   platform.GetAppVersion(),
		BuildTime: platform.GetAppBuildTime(),
		Uptime:    time.Since(platform.GetAppStartTime()).Round(time.Second).String(),
		Circuit:   x.executor.State().String(),
	})
}

func (x *Outsiders) resilienceMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(x.log, w, http.StatusOK, resilienceResponse{Metrics: x.executor.Metrics(), Stats: x.executor.Stats()})
}

func (x *Outsiders) resilienceReset(w http.ResponseWriter, r *http.Request) {
	x.log.W("Circuit reset requested", "remote", r.RemoteAddr)
	x.executor.ResetCircuit()
	writeJSON(x.log, w, http.StatusOK, resilienceResponse{Metrics: x.executor.Metrics(), Stats: x.executor.Stats()})
}

func (x *Outsiders) reply(w http.ResponseWriter, r *http.Request) {
	var request replyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&request); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}
	if request.CallerID == "" {
		request.CallerID = r.Header.Get("X-Caller-Id")
	}
	if request.CallerID == "" || len(request.Messages) == 0 {
		http.Error(w, "callerId and messages are required", http.StatusBadRequest)
		return
	}

	reply, err := x.assistant.Reply(r.Context(), artificial.Turn{
		CallerID: request.CallerID,
		Messages: request.Messages,
		Document: request.Document,
		Page:     request.Page,
	})

	response := replyResponse{
		OperationID:      reply.OperationID,
		Text:             reply.Text,
		Notice:           reply.Notice,
		Denied:           reply.Denied,
		Degraded:         reply.Degraded,
		Model:            reply.Decision.SelectedModel.ID,
		Complexity:       string(reply.Decision.Complexity.Level),
		Reasoning:        reply.Decision.Reasoning,
		ContextReduction: reply.Context.Reduction,
	}
	if !reply.Decision.EstimatedCost.IsZero() {
		response.EstimatedCost = reply.Decision.EstimatedCost.String()
	}

	switch {
	case err != nil:
		x.log.E("Assistant reply failed", tracing.OperationId, reply.OperationID, tracing.InnerError, err)
		response.Notice = "The assistant could not answer, please try again."
		status := http.StatusBadGateway
		if r.Context().Err() != nil {
			status = http.StatusRequestTimeout
		}
		writeJSON(x.log, w, status, response)
	case reply.Denied:
		seconds := int((reply.RetryAfter + time.Second - 1) / time.Second)
		response.RetryAfterSeconds = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
		writeJSON(x.log, w, http.StatusTooManyRequests, response)
	case reply.Degraded:
		writeJSON(x.log, w, http.StatusServiceUnavailable, response)
	default:
		writeJSON(x.log, w, http.StatusOK, response)
	}
}

func writeJSON(log *tracing.Logger, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.E("Failed to write response", tracing.InnerError, err)
	}
}
