package types

const DefaultPageSize = 20

type UserBrief struct {
	Id       uint64 `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"` // 公开 URL，可为空
	Verified bool   `json:"verified"`
}

type ProfileDTO struct {
	UserBrief
	Bio            string `json:"bio"`
	FollowerCount  uint32 `json:"follower_count"`
	FollowingCount uint32 `json:"following_count"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=2,max=32"`
	Nickname string `json:"nickname"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token  string `json:"token"`
	UserId uint64 `json:"user_id"`
}

type UpdateProfileRequest struct {
	Nickname *string `json:"nickname"`
	Bio      *string `json:"bio"`
}

type SearchUsersRequest struct {
	Query string `form:"q"`
}
