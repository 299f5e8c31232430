package telegram

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/valyala/fasthttp"
)

const downloadTimeout = 30 * time.Second

// maxDownloadSize caps files fetched from chats; calendars are a few kilobytes.
const maxDownloadSize = 1 << 20

type Client struct {
	Bot          *tgbotapi.BotAPI
	UpdateConfig tgbotapi.UpdateConfig
}

func NewClient(token string, debug bool) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	bot.Debug = debug

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	return &Client{
		Bot:          bot,
		UpdateConfig: updateConfig,
	}, nil
}

// SendDocument uploads an in-memory file to chatID.
func (c *Client) SendDocument(chatID int64, name string, data []byte, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	doc.Caption = caption
	_, err := c.Bot.Send(doc)
	return err
}

// FileURL resolves the download URL of a file the user sent to the bot.
func (c *Client) FileURL(fileID string) (string, error) {
	return c.Bot.GetFileDirectURL(fileID)
}

// DownloadFile fetches the contents of a file the user sent to the bot.
func (c *Client) DownloadFile(fileID string, size int) ([]byte, error) {
	if size > maxDownloadSize {
		return nil, fmt.Errorf("file is too large (%d bytes, limit %d)", size, maxDownloadSize)
	}

	url, err := c.FileURL(fileID)
	if err != nil {
		return nil, err
	}

	status, body, err := fasthttp.GetTimeout(nil, url, downloadTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	if status != fasthttp.StatusOK {
		return nil, fmt.Errorf("failed to download file: HTTP %d", status)
	}
	return body, nil
}
