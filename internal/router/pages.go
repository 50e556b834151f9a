package router

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/craftshowcase/internal/i18n"

	"github.com/gin-gonic/gin"
)

var adminPageTemplate = template.Must(template.New("admin-page").Parse(`<!DOCTYPE html>
<html lang="{{.Locale}}"{{if eq .Locale "ar"}} dir="rtl"{{end}}>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body data-page="{{.Page}}" data-locale="{{.Locale}}"><div id="app"></div></body>
</html>
`))

type adminPageData struct {
	Locale string
	Page   string
	Title  string
}

// adminPage 返回后台页面外壳，页面逻辑由前端脚本接管
func adminPage(page, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := adminPageData{
			Locale: i18n.Normalize(c.Param("locale")),
			Page:   page,
			Title:  title,
		}
		var buf bytes.Buffer
		if err := adminPageTemplate.Execute(&buf, data); err != nil {
			c.String(http.StatusInternalServerError, "render failed")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
	}
}

func redirectToDefaultLocale(c *gin.Context) {
	c.Redirect(http.StatusFound, "/"+i18n.DefaultLocale)
}
