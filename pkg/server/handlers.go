package server

import (
	"Lumen/handler"
	"Lumen/socket"
)

type Handlers struct {
	Auth    *handler.Auth
	User    *handler.User
	Message *handler.Message
	Story   *handler.Story
	Follow  *handler.Follow
	Post    *handler.Post
	Comment *handler.Comment
	Chatbot *handler.Chatbot
	Access  *handler.Access
	Ws      *socket.Handler
}
