package types

type RequestCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type RequestCodeResponse struct {
	RequestID string `json:"request_id"`
}

type VerifyCodeRequest struct {
	RequestID string `json:"request_id" binding:"required"`
	Code      string `json:"code" binding:"required,len=6"`
}

type VerifyCodeResponse struct {
	// 私密文档访问令牌
	GrantToken string `json:"grant_token"`
}

type DocumentDTO struct {
	Name string `json:"name"`
	URL  string `json:"url"` // 签名 URL
}
