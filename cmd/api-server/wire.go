//go:build wireinject
// +build wireinject

package main

import (
	"Lumen/config"
	"Lumen/dao"
	"Lumen/dao/cache"
	"Lumen/handler"
	"Lumen/pkg/client"
	"Lumen/pkg/database"
	"Lumen/pkg/server"
	"Lumen/service"
	"Lumen/socket"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(

		client.NewRedisClient,
		config.ProvideOssConfig,
		config.ProvideLlmConfig,
		config.ProvideProductConfig,
		server.NewGinEngine,
		cache.ProviderSet,

		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.User), "*"),
		wire.Struct(new(handler.Message), "*"),
		wire.Struct(new(handler.Story), "*"),
		wire.Struct(new(handler.Follow), "*"),
		wire.Struct(new(handler.Post), "*"),
		wire.Struct(new(handler.Comment), "*"),
		wire.Struct(new(handler.Chatbot), "*"),
		wire.Struct(new(handler.Access), "*"),

		socket.NewHub,
		socket.NewSubscriber,
		wire.Struct(new(socket.Handler), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),

		dao.ProviderSet,

		service.ProviderSet,
		database.NewDB,
	)
	return nil
}
