package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"Lumen/config"
	"Lumen/dao/cache"
	"Lumen/pkg/log"
	"Lumen/pkg/response"
	"Lumen/types"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

const chatbotSystemPrompt = "你是个人主页的站点助手，负责回答访客关于站主的作品、经历和联系方式的问题。" +
	"回答要简短友好，不知道的就直说不知道，不要编造。"

var _ IChatbotService = (*ChatbotService)(nil)

type IChatbotService interface {
	Ask(ctx context.Context, sessionID, question string) (*types.AskResponse, error)
}

type ChatbotService struct {
	client  openai.Client
	model   string
	History *cache.ChatHistoryStorage
	Product *config.ProductConfig
}

func NewChatbotService(cfg *config.LlmConfig, history *cache.ChatHistoryStorage, product *config.ProductConfig) IChatbotService {
	client := openai.NewClient(
		option.WithAPIKey(cfg.ApiKey),
		option.WithBaseURL(cfg.BaseURL),
	)
	return &ChatbotService{
		client:  client,
		model:   cfg.Model,
		History: history,
		Product: product,
	}
}

func (s *ChatbotService) Ask(ctx context.Context, sessionID, question string) (*types.AskResponse, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, response.NewError(http.StatusBadRequest, "问题不能为空")
	}

	// 带上本会话最近几轮上下文
	history, err := s.History.List(ctx, sessionID)
	if err != nil {
		log.L.Warn("load chat history failed", zap.Error(err), zap.String("session", sessionID))
		history = nil
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	messages = append(messages, openai.SystemMessage(chatbotSystemPrompt))
	for _, turn := range history {
		if turn.Role == "assistant" {
			messages = append(messages, openai.AssistantMessage(turn.Content))
		} else {
			messages = append(messages, openai.UserMessage(turn.Content))
		}
	}
	messages = append(messages, openai.UserMessage(question))

	startTime := time.Now()
	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    s.model,
		Messages: messages,
	})
	if err != nil {
		log.L.Error("chat completion failed", zap.Error(err))
		return nil, response.NewError(http.StatusBadGateway, "助手暂时不可用")
	}

	answer := completion.Choices[0].Message.Content
	log.L.Info("chat completion", zap.String("session", sessionID), zap.Duration("gen time", time.Since(startTime)))

	if err := s.History.Append(ctx, sessionID, s.Product.ChatbotHistoryTurns,
		cache.ChatTurn{Role: "user", Content: question},
		cache.ChatTurn{Role: "assistant", Content: answer},
	); err != nil {
		log.L.Warn("append chat history failed", zap.Error(err))
	}

	return &types.AskResponse{Answer: answer}, nil
}
