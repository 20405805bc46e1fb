//go:build wireinject

package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewUsers,
	NewUserStatsDAO,
	NewUserFollowDAO,
	NewMessageDAO,
	NewStoryDAO,
	NewStoryViewDAO,
	NewPostDAO,
	NewPostLikeDAO,
	NewPostStatsDAO,
	NewCommentDAO,
)
