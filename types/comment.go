package types

type CommentDTO struct {
	Id        int64     `json:"id"`
	PostId    int64     `json:"post_id"`
	Author    UserBrief `json:"author"`
	Content   string    `json:"content"`
	CreatedAt int64     `json:"created_at"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=500"`
}
