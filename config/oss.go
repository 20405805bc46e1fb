package config

type OssConfig struct {
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
	Region          string `json:"region" yaml:"region"`
	AccessKeyID     string `json:"ak" yaml:"ak"`
	AccessKeySecret string `json:"sk" yaml:"sk"`

	// PublicBucket 永久公开读（头像、动态图片）
	PublicBucket string `json:"public_bucket" yaml:"public_bucket"`
	// PrivateBucket 私有读，只发临时签名 URL（快拍、简历等文档）
	PrivateBucket string `json:"private_bucket" yaml:"private_bucket"`
	// PublicBaseURL 公开桶的 CDN 域名
	PublicBaseURL string `json:"public_base_url" yaml:"public_base_url"`
}

func ProvideOssConfig(cfg *Config) *OssConfig {
	return cfg.Oss
}
