package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meltyapp/backend/internal/analysis/mood"
	chatmodel "github.com/meltyapp/backend/internal/model/chat"
	"github.com/meltyapp/backend/internal/model/persona"
	"github.com/meltyapp/backend/internal/service/ai"
	chatservice "github.com/meltyapp/backend/internal/service/chat"
	"github.com/meltyapp/backend/internal/service/transcribe"
	"github.com/meltyapp/backend/internal/wire"
	"github.com/meltyapp/backend/pkg/utils"
)

// Generator 是中继依赖的上游生成能力。
type Generator interface {
	StreamGenerate(ctx context.Context, systemPrompt string, history []ai.Turn, userMessage string) (io.ReadCloser, error)
	SummarizeJournal(ctx context.Context, entry string) (string, error)
}

// Handler 是流式聊天中继：一次用户消息换一次落库的对话回合
// 和一条流式回复，把上游的流式 JSON 载荷改写成行分隔事件下发。
type Handler struct {
	generator     Generator
	chatStore     chatservice.Store
	personas      persona.Store
	transcriber   transcribe.Transcriber
	streamTimeout time.Duration
}

// New creates the relay handler.
func New(generator Generator, chatStore chatservice.Store, personas persona.Store, transcriber transcribe.Transcriber, streamTimeout time.Duration) *Handler {
	if streamTimeout <= 0 {
		streamTimeout = 2 * time.Minute
	}
	return &Handler{
		generator:     generator,
		chatStore:     chatStore,
		personas:      personas,
		transcriber:   transcriber,
		streamTimeout: streamTimeout,
	}
}

// RegisterRoutes 注册聊天中继路由。
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

type chatRequest struct {
	Message   string `json:"message"`
	Persona   string `json:"persona"`
	SessionID string `json:"sessionId"`
	IsAudio   bool   `json:"isAudio"`
	AudioData string `json:"audioData"`
	Type      string `json:"type"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	// 单个请求的意外错误不允许拖垮进程。
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[chat] panic handling request: %v", rec)
			utils.RespondError(w, http.StatusInternalServerError, "internal error")
		}
	}()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Type == "summary" {
		h.handleSummary(w, r, req)
		return
	}

	if req.Message == "" || req.Persona == "" {
		utils.RespondError(w, http.StatusBadRequest, "message and persona are required")
		return
	}

	ctx := r.Context()
	userID := resolveUserID(r)

	session, err := h.resolveSession(ctx, req, userID)
	if errors.Is(err, chatservice.ErrSessionNotFound) {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		log.Printf("[chat] failed to resolve session: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to resolve session")
		return
	}

	messageText := req.Message
	if req.IsAudio && req.AudioData != "" {
		messageText, err = h.transcriber.Transcribe(ctx, req.AudioData)
		if err != nil {
			log.Printf("[chat] transcription failed: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "transcription failed")
			return
		}
	}

	detected, _ := mood.Detect(messageText)

	// 用户回合先落库，之后上游再怎么失败也不丢这轮输入。
	userMsg := chatmodel.Message{
		SessionID:    session.ID,
		Role:         chatmodel.RoleUser,
		Content:      messageText,
		MoodDetected: string(detected),
	}
	if err := h.chatStore.SaveMessage(ctx, userMsg); err != nil {
		log.Printf("[chat] failed to save user message: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to save message")
		return
	}

	transcript, err := h.chatStore.LoadTranscript(ctx, session.ID)
	if err != nil {
		log.Printf("[chat] failed to load transcript: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	p := persona.Resolve(h.personas, session.Persona)

	streamCtx, cancel := context.WithTimeout(ctx, h.streamTimeout)
	defer cancel()

	body, err := h.generator.StreamGenerate(streamCtx, p.SystemPrompt, buildHistory(transcript, messageText), messageText)
	if err != nil {
		log.Printf("[chat] upstream call failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "upstream generation failed")
		return
	}
	defer body.Close()

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	// 会话ID在任何响应体字节之前通过响应头暴露，
	// 客户端不依赖事件解析就能拿到服务端新建的会话。
	utils.StreamHeaders(w)
	w.Header().Set(wire.SessionIDHeader, session.ID)
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.relayStream(session.ID, body, w, flusher)

	log.Printf("[chat] completed turn for session=%s persona=%s", session.ID, p.ID)
}

// relayStream 把上游字节流改写为行分隔事件，流结束后一次性落库
// 完整回复并发出唯一的终止事件。上游中途失败时已积累的部分回复
// 同样落库——终止事件在任何路径上都恰好发一次。
func (h *Handler) relayStream(sessionID string, body io.Reader, w http.ResponseWriter, flusher http.Flusher) {
	var (
		extractor wire.Extractor
		full      strings.Builder
	)

	forward := func(fragments []string) bool {
		for _, frag := range fragments {
			full.WriteString(frag)
			if err := utils.SendStreamLine(w, flusher, wire.Event{Content: frag}); err != nil {
				log.Printf("[chat] downstream write failed, stopping relay: %v", err)
				return false
			}
		}
		return true
	}

	chunk := make([]byte, 4096)
	for {
		n, readErr := body.Read(chunk)
		if n > 0 {
			if !forward(extractor.Feed(chunk[:n])) {
				break
			}
		}
		if readErr != nil {
			if !errors.Is(readErr, io.EOF) {
				log.Printf("[chat] upstream stream ended early: %v", readErr)
			}
			forward(extractor.Finish())
			break
		}
	}

	if full.Len() > 0 {
		// 落库用独立的 context：客户端断开不该丢掉已组装的回复。
		saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		modelMsg := chatmodel.Message{
			SessionID: sessionID,
			Role:      chatmodel.RoleModel,
			Content:   full.String(),
		}
		if err := h.chatStore.SaveMessage(saveCtx, modelMsg); err != nil {
			log.Printf("[chat] failed to save model message: %v", err)
		}
	}

	if err := utils.SendStreamLine(w, flusher, wire.Event{Done: true, SessionID: sessionID}); err != nil {
		log.Printf("[chat] failed to send terminal event: %v", err)
	}
}

// handleSummary 走非流式摘要路径，完全绕开会话与流式逻辑。
// 上游失败不向调用方透传错误，退回固定文案。
func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request, req chatRequest) {
	if req.Message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}

	summary, err := h.generator.SummarizeJournal(r.Context(), req.Message)
	if err != nil {
		log.Printf("[chat] summary generation failed: %v", err)
		summary = ai.SummaryUnavailable
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

// resolveSession 解析会话：没带ID就新建，带了ID就校验存在性。
// 会话ID是不可伪造的服务端句柄，未知ID直接 404 而不是悄悄新建。
func (h *Handler) resolveSession(ctx context.Context, req chatRequest, userID string) (chatmodel.Session, error) {
	if req.SessionID == "" {
		return h.chatStore.CreateSession(ctx, userID, req.Persona)
	}
	return h.chatStore.GetSession(ctx, req.SessionID)
}

// buildHistory 把会话记录转成上游回合，剔除刚写入的当前用户消息。
func buildHistory(transcript []chatmodel.Message, current string) []ai.Turn {
	if n := len(transcript); n > 0 && transcript[n-1].Role == chatmodel.RoleUser && transcript[n-1].Content == current {
		transcript = transcript[:n-1]
	}

	turns := make([]ai.Turn, 0, len(transcript))
	for _, msg := range transcript {
		role := "model"
		if msg.Role == chatmodel.RoleUser {
			role = "user"
		}
		turns = append(turns, ai.Turn{Role: role, Text: msg.Content})
	}
	return turns
}

func resolveUserID(r *http.Request) string {
	if id := r.Header.Get("X-User-Id"); id != "" {
		return id
	}
	// 匿名调用方给一个临时身份，不拒绝请求。
	return fmt.Sprintf("temp_%d", time.Now().UnixMilli())
}
