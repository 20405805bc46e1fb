package types

type StoryDTO struct {
	Id         int64  `json:"id"`
	UserId     uint64 `json:"user_id"`
	URL        string `json:"url"` // 1 小时签名 URL
	Caption    string `json:"caption"`
	CreatedAt  int64  `json:"created_at"` // 毫秒
	ExpiresAt  int64  `json:"expires_at"` // 毫秒
	ViewsCount uint32 `json:"views_count"`
	Viewed     bool   `json:"viewed"` // 当前观众是否已看过
}

// StoryBucketDTO 按作者分组后的一桶快拍
type StoryBucketDTO struct {
	Author      UserBrief  `json:"author"`
	HasUnviewed bool       `json:"has_unviewed"`
	Stories     []StoryDTO `json:"stories"`
}

type UploadStoryResp struct {
	StoryId   int64  `json:"story_id"`
	URL       string `json:"url"`
	ExpiresAt int64  `json:"expires_at"`
}
