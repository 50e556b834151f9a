package i18n

var catalogs = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":              "Invalid request",
		"error.unauthorized":             "Unauthorized",
		"error.forbidden":                "Forbidden",
		"error.not_found":                "Not found",
		"error.internal":                 "Internal server error",
		"error.upload_no_files":          "No files provided",
		"error.upload_failed":            "Failed to upload files",
		"error.upload_rejected":          "File type or size not allowed",
		"error.image_required":           "No image file provided",
		"error.generate_failed":          "Failed to generate product information",
		"error.learning_fields_missing":  "Missing required fields",
		"error.learning_failed":          "Failed to update AI template",
		"error.products_fetch_failed":    "Failed to fetch products",
		"error.products_not_array":       "Products must be an array",
		"error.products_import_failed":   "Failed to import products",
		"error.product_invalid":          "Invalid product data",
		"error.product_not_found":        "Product not found",
		"error.product_create_failed":    "Failed to create product",
		"error.product_duplicate_id":     "Duplicate product id",
		"error.categories_fetch_failed":  "Failed to fetch categories",
		"error.quote_fields_missing":     "Missing required fields",
		"error.quote_email_invalid":      "Invalid email address",
		"error.quote_send_failed":        "Failed to send quote request",
		"error.quote_no_recipients":      "No email recipients configured",
		"error.login_invalid":            "Invalid credentials",
		"error.login_rate_limited":       "Too many login attempts, please try again in %d seconds",
		"error.rate_limited":             "Too many requests, please try again in %d seconds",
		"error.rate_limit_unavailable":   "Rate limiter unavailable",
		"error.login_failed":             "Login failed",
		"error.recipient_invalid":        "Invalid recipient",
		"error.recipient_not_found":      "Recipient not found",
		"error.config_fetch_failed":      "Failed to load configuration",
		"error.config_save_failed":       "Failed to save configuration",
		"error.excel_invalid":            "Invalid Excel file",
		"error.excel_export_failed":      "Failed to export products",
		"error.sitemap_failed":           "Failed to build sitemap",
		"success.files_uploaded":         "Files uploaded successfully",
		"success.product_generated":      "Product generated successfully",
		"success.product_published":      "Product generated and published",
		"success.template_updated":       "AI template updated successfully",
		"success.product_created":        "Product created successfully",
		"success.products_imported":      "%d products imported successfully",
		"success.quote_sent":             "Quote request sent successfully",
		"success.recipients_updated":     "Email configuration updated",
		"success.template_prompt_saved":  "AI guidelines saved",
	},
	LocaleZH: {
		"error.bad_request":              "请求参数错误",
		"error.unauthorized":             "未登录或登录已过期",
		"error.forbidden":                "无权限访问",
		"error.not_found":                "资源不存在",
		"error.internal":                 "服务器内部错误",
		"error.upload_no_files":          "未提供文件",
		"error.upload_failed":            "文件上传失败",
		"error.upload_rejected":          "文件类型或大小不被允许",
		"error.image_required":           "未提供图片文件",
		"error.generate_failed":          "生成商品信息失败",
		"error.learning_fields_missing":  "缺少必填字段",
		"error.learning_failed":          "更新 AI 模板失败",
		"error.products_fetch_failed":    "获取商品失败",
		"error.products_not_array":       "products 必须是数组",
		"error.products_import_failed":   "导入商品失败",
		"error.product_invalid":          "商品数据无效",
		"error.product_not_found":        "商品不存在",
		"error.product_create_failed":    "创建商品失败",
		"error.product_duplicate_id":     "商品 id 重复",
		"error.categories_fetch_failed":  "获取分类失败",
		"error.quote_fields_missing":     "缺少必填字段",
		"error.quote_email_invalid":      "邮箱格式不正确",
		"error.quote_send_failed":        "发送询价失败",
		"error.quote_no_recipients":      "未配置收件人",
		"error.login_invalid":            "账号或密码错误",
		"error.login_rate_limited":       "登录尝试过多，请 %d 秒后再试",
		"error.rate_limited":             "请求过于频繁，请 %d 秒后再试",
		"error.rate_limit_unavailable":   "限流服务不可用",
		"error.login_failed":             "登录失败",
		"error.recipient_invalid":        "收件人配置无效",
		"error.recipient_not_found":      "收件人不存在",
		"error.config_fetch_failed":      "读取配置失败",
		"error.config_save_failed":       "保存配置失败",
		"error.excel_invalid":            "Excel 文件无效",
		"error.excel_export_failed":      "导出商品失败",
		"error.sitemap_failed":           "生成站点地图失败",
		"success.files_uploaded":         "文件上传成功",
		"success.product_generated":      "商品信息生成成功",
		"success.product_published":      "商品已生成并发布",
		"success.template_updated":       "AI 模板已更新",
		"success.product_created":        "商品创建成功",
		"success.products_imported":      "成功导入 %d 个商品",
		"success.quote_sent":             "询价已发送",
		"success.recipients_updated":     "邮件配置已更新",
		"success.template_prompt_saved":  "AI 指引已保存",
	},
	LocaleAR: {
		"error.bad_request":              "طلب غير صالح",
		"error.unauthorized":             "غير مصرح",
		"error.forbidden":                "ممنوع",
		"error.not_found":                "غير موجود",
		"error.internal":                 "خطأ داخلي في الخادم",
		"error.upload_no_files":          "لم يتم تقديم ملفات",
		"error.upload_failed":            "فشل رفع الملفات",
		"error.image_required":           "لم يتم تقديم صورة",
		"error.generate_failed":          "فشل إنشاء معلومات المنتج",
		"error.products_fetch_failed":    "فشل جلب المنتجات",
		"error.product_not_found":        "المنتج غير موجود",
		"error.categories_fetch_failed":  "فشل جلب الفئات",
		"error.quote_fields_missing":     "حقول مطلوبة مفقودة",
		"error.quote_email_invalid":      "بريد إلكتروني غير صالح",
		"error.quote_send_failed":        "فشل إرسال طلب عرض السعر",
		"error.login_invalid":            "بيانات الاعتماد غير صحيحة",
		"success.quote_sent":             "تم إرسال طلب عرض السعر بنجاح",
	},
}
