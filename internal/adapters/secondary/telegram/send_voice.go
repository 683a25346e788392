package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// SendVoiceResult результат отправки голосового сообщения
type SendVoiceResult struct {
	MessageID int64 `json:"message_id"`
	Voice     struct {
		FileID   string `json:"file_id"`
		Duration int    `json:"duration"`
	} `json:"voice"`
}

// SendVoiceResponse ответ от Telegram API на sendVoice
type SendVoiceResponse struct {
	APIResponse
	Result SendVoiceResult `json:"result"`
}

// SendVoice отправляет голосовое сообщение в чат и возвращает file_id
func (c *Client) SendVoice(ctx context.Context, chatID int64, voiceData []byte, filename string) (string, error) {
	// Создаём multipart/form-data запрос
	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)

	// Добавляем chat_id
	if err := writer.WriteField("chat_id", fmt.Sprintf("%d", chatID)); err != nil {
		c.log.Error("failed to write chat_id field",
			"error", err,
			"chat_id", chatID)
		return "", fmt.Errorf("failed to write chat_id: %w", err)
	}

	// Добавляем голос как файл
	voicePart, err := writer.CreateFormFile("voice", filename)
	if err != nil {
		c.log.Error("failed to create voice form file",
			"error", err,
			"filename", filename)
		return "", fmt.Errorf("failed to create voice form file: %w", err)
	}

	if _, err := voicePart.Write(voiceData); err != nil {
		c.log.Error("failed to write voice data",
			"error", err,
			"filename", filename)
		return "", fmt.Errorf("failed to write voice data: %w", err)
	}

	// Закрываем writer для завершения multipart
	if err := writer.Close(); err != nil {
		c.log.Error("failed to close multipart writer",
			"error", err)
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	// Создаём HTTP запрос
	url := c.baseURL + "/sendVoice"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &requestBody)
	if err != nil {
		c.log.Error("failed to create sendVoice request",
			"error", err,
			"chat_id", chatID)
		return "", fmt.Errorf("telegram create request failed [chat_id=%d]: %w", chatID, err)
	}

	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	c.log.Debug("sending voice to Telegram",
		"chat_id", chatID,
		"filename", filename,
		"voice_size", len(voiceData),
		"url", url)

	// Отправляем запрос
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Debug("telegram sendVoice request failed",
			"error", err,
			"chat_id", chatID,
			"filename", filename)
		return "", fmt.Errorf("telegram request failed [chat_id=%d]: %w", chatID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("failed to read sendVoice response body",
			"error", err,
			"chat_id", chatID,
			"status_code", resp.StatusCode)
		return "", fmt.Errorf("telegram read response failed [chat_id=%d, status=%d]: %w",
			chatID, resp.StatusCode, err)
	}

	var apiResp SendVoiceResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		c.log.Error("failed to unmarshal sendVoice response",
			"error", err,
			"chat_id", chatID,
			"status_code", resp.StatusCode,
			"body", string(body))
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !apiResp.OK {
		c.log.Error("telegram API returned error",
			"error_code", apiResp.ErrorCode,
			"description", apiResp.Description,
			"chat_id", chatID,
			"status_code", resp.StatusCode)
		return "", fmt.Errorf("telegram API error: %s (code: %d)", apiResp.Description, apiResp.ErrorCode)
	}

	c.log.Debug("voice sent successfully",
		"chat_id", chatID,
		"message_id", apiResp.Result.MessageID,
		"file_id", apiResp.Result.Voice.FileID,
	)

	return apiResp.Result.Voice.FileID, nil
}
