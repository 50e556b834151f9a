package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/craftshowcase/internal/constants"
	"github.com/craftshowcase/internal/models"

	"github.com/360EntSecGroup-Skylar/excelize"
)

const excelSheetName = "Products"

var excelColumns = []string{
	"ID",
	"Name_EN", "Name_ZH", "Name_AR",
	"Desc_EN", "Desc_ZH", "Desc_AR",
	"Category",
	"Images",
	"Dimensions_EN", "Dimensions_ZH", "Dimensions_AR",
	"Material_EN", "Material_ZH", "Material_AR",
	"Craftsmanship_EN", "Craftsmanship_ZH", "Craftsmanship_AR",
	"Price",
	"MOQ",
	"Keywords",
	"Created",
	"Updated",
}

// ExcelService 商品表格导入导出
type ExcelService struct {
	now func() time.Time
}

// NewExcelService 创建表格服务
func NewExcelService() *ExcelService {
	return &ExcelService{now: time.Now}
}

// Export 把商品写成单工作表 xlsx
func (s *ExcelService) Export(listings []models.Listing, w io.Writer) error {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", excelSheetName)
	for col, header := range excelColumns {
		f.SetCellValue(excelSheetName, cellName(col, 1), header)
	}
	for i, item := range listings {
		row := i + 2
		for col, value := range listingRow(item) {
			f.SetCellValue(excelSheetName, cellName(col, row), value)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func listingRow(item models.Listing) []string {
	spec := item.Specifications
	return []string{
		item.ID,
		item.Name.EN, item.Name.ZH, item.Name.AR,
		item.Description.EN, item.Description.ZH, item.Description.AR,
		item.Category,
		strings.Join(item.Images, ", "),
		spec.Dimensions.EN, spec.Dimensions.ZH, spec.Dimensions.AR,
		spec.Material.EN, spec.Material.ZH, spec.Material.AR,
		spec.Craftsmanship.EN, spec.Craftsmanship.ZH, spec.Craftsmanship.AR,
		spec.Price,
		spec.MOQ,
		strings.Join(item.SEOKeywords, ", "),
		item.CreatedAt,
		item.UpdatedAt,
	}
}

// Import 读取第一个工作表，首行为表头；阿拉伯语列为空时回退英文
func (s *ExcelService) Import(r io.Reader) ([]models.Listing, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExcelInvalid, err)
	}
	sheet := firstSheet(f)
	if sheet == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrExcelInvalid)
	}
	rows := f.GetRows(sheet)
	if len(rows) == 0 {
		return []models.Listing{}, nil
	}

	header := make(map[string]int, len(rows[0]))
	for idx, name := range rows[0] {
		header[strings.TrimSpace(name)] = idx
	}
	cell := func(row []string, name string) string {
		idx, ok := header[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	localized := func(row []string, prefix string) models.LocalizedText {
		text := models.LocalizedText{
			EN: cell(row, prefix+"_EN"),
			ZH: cell(row, prefix+"_ZH"),
			AR: cell(row, prefix+"_AR"),
		}
		if text.AR == "" {
			text.AR = text.EN
		}
		return text
	}

	now := s.now()
	timestamp := FormatTimestamp(now)
	listings := make([]models.Listing, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		id := cell(row, "ID")
		if id == "" {
			id = GenerateListingID(now)
		}
		category := Slugify(cell(row, "Category"))
		if category == "" {
			category = constants.CategoryFallback
		}
		listing := models.Listing{
			ID:          id,
			Name:        localized(row, "Name"),
			Description: localized(row, "Desc"),
			Category:    category,
			Images:      models.StringArray(splitList(cell(row, "Images"))),
			Specifications: models.Specifications{
				Dimensions:    localized(row, "Dimensions"),
				Material:      localized(row, "Material"),
				Craftsmanship: localized(row, "Craftsmanship"),
				Price:         cell(row, "Price"),
				MOQ:           cell(row, "MOQ"),
			},
			SEOKeywords: models.StringArray(splitList(cell(row, "Keywords"))),
			CreatedAt:   firstNonEmpty(cell(row, "Created"), timestamp),
			UpdatedAt:   firstNonEmpty(cell(row, "Updated"), timestamp),
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

func firstSheet(f *excelize.File) string {
	sheets := f.GetSheetMap()
	first := 0
	for idx := range sheets {
		if first == 0 || idx < first {
			first = idx
		}
	}
	return sheets[first]
}

// cellName 列下标从 0 开始，行号从 1 开始
func cellName(col, row int) string {
	name := ""
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		name = string(rune('A'+(n-1)%26)) + name
	}
	return fmt.Sprintf("%s%d", name, row)
}

func splitList(raw string) []string {
	items := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func isBlankRow(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
