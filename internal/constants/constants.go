package constants

// 文档存储键
const (
	DocumentProducts   = "products"
	DocumentCategories = "categories"
	DocumentAITemplate = "ai-template"
	DocumentConfig     = "config"
)

// 存储驱动常量
const (
	StorageDriverFile     = "file"
	StorageDriverBolt     = "bolt"
	StorageDriverDatabase = "database"
)

// 商品分类 key（生成结果只能落在这些分类中）
const (
	CategoryIncenseBurner       = "incense-burner"
	CategoryDryFruitBox         = "dry-fruit-box"
	CategoryGlassIronFruitPlate = "glass-iron-fruit-plate"
	CategoryIronDiningTable     = "iron-dining-table"
	CategoryIronOrnaments       = "iron-ornaments"
	// CategoryFallback Excel 导入缺省分类
	CategoryFallback = "metal-crafts"
)

// GeneratedCategories 生成结果允许的分类集合（有序）
var GeneratedCategories = []string{
	CategoryIncenseBurner,
	CategoryDryFruitBox,
	CategoryGlassIronFruitPlate,
	CategoryIronDiningTable,
	CategoryIronOrnaments,
}

// 学习日志常量
const (
	LearningLogCapacity     = 10
	LearningFingerprintSize = 100
	PromptExampleLimit      = 2
	DefaultTemplateID       = "default"
	DefaultTemplateName     = "Default Template"
)

// 批量上传条目状态
const (
	BatchStatusPending    = "pending"
	BatchStatusProcessing = "processing"
	BatchStatusSuccess    = "success"
	BatchStatusError      = "error"
)

// 管理员会话常量
const (
	AdminCookieName = "admin-auth"
	AdminRole       = "admin"
	AdminSubjectKey = "admin_subject"
	AdminRoleKey    = "admin_role"
)

// 异步任务常量
const (
	QueueDefault   = "default"
	TaskQuoteEmail = "quote:email"
)

// 缓存键
const (
	CacheKeyListings   = "catalog:listings"
	CacheKeyCategories = "catalog:categories"
)
