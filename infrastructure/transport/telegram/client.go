package telegram

import (
	"bytes"
	"context"
	stdjson "encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Messenger é a superfície de envio usada pelo engine de conversa e pelo
// gerador de relatórios.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string, markup *InlineKeyboardMarkup) (*Message, error)
	EditMessageText(ctx context.Context, chatID int64, messageID int, text string, markup *InlineKeyboardMarkup) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	AnswerCallbackQuery(ctx context.Context, callbackQueryID string, text string) error
}

// Client adiciona ao Messenger o long polling de updates.
type Client interface {
	Messenger
	GetUpdates(ctx context.Context, offset int64) ([]Update, error)
}

type BotClient struct {
	apiClient  *http.Client
	pollClient *http.Client
	cfg        *config.Config
}

// NewClient cria um cliente do Bot API. O pollClient tem timeout maior que a
// janela de long polling para que o servidor responda antes do corte local.
func NewClient(cfg *config.Config) Client {
	pollTimeout := time.Duration(cfg.Telegram.PollTimeoutSeconds+10) * time.Second

	return &BotClient{
		apiClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		pollClient: &http.Client{
			Timeout: pollTimeout,
		},
		cfg: cfg,
	}
}

type apiResponse struct {
	OK          bool               `json:"ok"`
	Result      stdjson.RawMessage `json:"result"`
	Description string             `json:"description,omitempty"`
}

func (c *BotClient) call(ctx context.Context, httpClient *http.Client, method string, payload any, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrapf(err, "erro ao serializar payload de %s", method)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.cfg.Telegram.BaseURL, c.cfg.Telegram.BotToken, method)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, "erro ao criar requisição de %s", method)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "erro ao chamar %s", method)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "erro ao ler resposta de %s", method)
	}

	var envelope apiResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return errors.Wrapf(err, "erro ao decodificar resposta de %s", method)
	}

	if !envelope.OK {
		return errors.Errorf("bot API retornou erro em %s: %s", method, envelope.Description)
	}

	if result != nil {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return errors.Wrapf(err, "erro ao decodificar resultado de %s", method)
		}
	}

	return nil
}

func (c *BotClient) SendMessage(ctx context.Context, chatID int64, text string, markup *InlineKeyboardMarkup) (*Message, error) {
	payload := map[string]any{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "Markdown",
	}
	if markup != nil {
		payload["reply_markup"] = markup
	}

	var message Message
	if err := c.call(ctx, c.apiClient, "sendMessage", payload, &message); err != nil {
		return nil, err
	}

	return &message, nil
}

func (c *BotClient) EditMessageText(ctx context.Context, chatID int64, messageID int, text string, markup *InlineKeyboardMarkup) error {
	payload := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
		"parse_mode": "Markdown",
	}
	if markup != nil {
		payload["reply_markup"] = markup
	}

	return c.call(ctx, c.apiClient, "editMessageText", payload, nil)
}

func (c *BotClient) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	payload := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
	}

	return c.call(ctx, c.apiClient, "deleteMessage", payload, nil)
}

func (c *BotClient) AnswerCallbackQuery(ctx context.Context, callbackQueryID string, text string) error {
	payload := map[string]any{
		"callback_query_id": callbackQueryID,
	}
	if text != "" {
		payload["text"] = text
	}

	return c.call(ctx, c.apiClient, "answerCallbackQuery", payload, nil)
}

// GetUpdates busca o próximo lote de updates via long polling.
func (c *BotClient) GetUpdates(ctx context.Context, offset int64) ([]Update, error) {
	payload := map[string]any{
		"offset":          offset,
		"timeout":         c.cfg.Telegram.PollTimeoutSeconds,
		"allowed_updates": []string{"message", "callback_query"},
	}

	var updates []Update
	if err := c.call(ctx, c.pollClient, "getUpdates", payload, &updates); err != nil {
		return nil, err
	}

	return updates, nil
}
