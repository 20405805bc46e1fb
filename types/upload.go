package types

type UploadImageResp struct {
	ObjectKey string `json:"object_key"`
	Url       string `json:"url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}
