// Package importer loads catalog CSV exports into the product and category
// tables.
package importer

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"optic-storefront/internal/domain"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Kind string

const (
	KindProducts   Kind = "products"
	KindCategories Kind = "categories"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type CategoryWriter interface {
	Upsert(ctx context.Context, c domain.Category, position int) error
}

// CSVImporter reads catalog CSV exports and inserts/updates products or
// categories. Product rows without a key continue the previous product and
// contribute extra images.
type CSVImporter struct {
	reader       *csv.Reader
	productRepo  ProductWriter
	categoryRepo CategoryWriter
	logger       *log.Entry
}

func NewCSVImporter(r io.Reader, products ProductWriter, categories CategoryWriter, logger *log.Entry) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &CSVImporter{
		reader:       csvr,
		productRepo:  products,
		categoryRepo: categories,
		logger:       logger.WithField("component", "importer"),
	}
}

// DetectKind peeks at the header line: a price column marks a product export.
func DetectKind(r io.Reader) (Kind, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read headers: %w", err)
	}
	headers := headerIndex(strings.Split(strings.TrimSpace(line), ","))
	if _, ok := headers["price"]; ok {
		return KindProducts, nil
	}
	if _, ok := headers["key"]; ok {
		return KindCategories, nil
	}
	return "", fmt.Errorf("unrecognised csv headers %q", strings.TrimSpace(line))
}

type csvRow struct {
	product domain.Product
	images  []string
}

// Run parses rows and upserts them. The returned count is the number of
// products, or categories for a category export.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["price"]; !ok {
		return i.runCategories(ctx, index)
	}
	return i.runProducts(ctx, index)
}

func (i *CSVImporter) runProducts(ctx context.Context, index map[string]int) (int, error) {
	var (
		current    *csvRow
		imported   int
		categories = map[string]struct{}{}
	)

	flush := func() error {
		if current == nil {
			return nil
		}
		if err := i.saveProduct(ctx, current, categories); err != nil {
			return err
		}
		imported++
		return nil
	}

	for line := 2; ; line++ {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row, err := parseProductRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if row == nil {
			continue
		}

		if row.product.Key != "" {
			if err := flush(); err != nil {
				return imported, err
			}
			current = row
			continue
		}

		// Continuation rows (images) belong to the current product.
		if current != nil {
			current.images = append(current.images, row.images...)
		}
	}

	if err := flush(); err != nil {
		return imported, err
	}
	return imported, nil
}

func (i *CSVImporter) saveProduct(ctx context.Context, row *csvRow, categories map[string]struct{}) error {
	p := row.product
	if p.ID == "" || p.Name == "" || p.Category == "" || !p.Price.IsPositive() {
		return fmt.Errorf("invalid product row (missing required fields) for key %q", p.Key)
	}
	if len(row.images) > 0 {
		if p.Image == "" {
			p.Image = row.images[0]
		}
		p.Images = row.images
	}

	if i.categoryRepo != nil {
		if _, seen := categories[p.Category]; !seen {
			if err := i.categoryRepo.Upsert(ctx, domain.Category{Key: p.Category, Name: titleCase(p.Category)}, len(categories)); err != nil {
				return fmt.Errorf("upsert category %q: %w", p.Category, err)
			}
			categories[p.Category] = struct{}{}
		}
	}

	if _, err := i.productRepo.Upsert(ctx, p); err != nil {
		return fmt.Errorf("upsert product %q: %w", p.Key, err)
	}
	i.logger.WithFields(log.Fields{"id": p.ID, "key": p.Key}).Debug("product imported")
	return nil
}

func (i *CSVImporter) runCategories(ctx context.Context, index map[string]int) (int, error) {
	if i.categoryRepo == nil {
		return 0, errors.New("category export given but no category repository configured")
	}
	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		key := pick(record, index, "key")
		if key == "" {
			continue
		}
		name := pick(record, index, "name")
		if name == "" {
			name = titleCase(key)
		}
		if err := i.categoryRepo.Upsert(ctx, domain.Category{Key: key, Name: name}, imported); err != nil {
			return imported, fmt.Errorf("upsert category %q: %w", key, err)
		}
		imported++
	}
	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	return idx
}

func parseProductRow(record []string, index map[string]int) (*csvRow, error) {
	key := pick(record, index, "key")
	image := pick(record, index, "image")
	if key == "" {
		if image == "" {
			return nil, nil
		}
		return &csvRow{images: []string{image}}, nil
	}

	p := domain.Product{
		ID:          pick(record, index, "id"),
		Key:         key,
		Name:        pick(record, index, "name"),
		Description: pick(record, index, "description"),
		Currency:    strings.ToUpper(pick(record, index, "currency")),
		Category:    pick(record, index, "category"),
		Image:       image,
		InStock:     true,
	}
	if p.Currency == "" {
		p.Currency = domain.DefaultCurrency.String()
	}

	if raw := pick(record, index, "price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("price %q: %w", raw, err)
		}
		p.Price = price
	}
	if raw := pick(record, index, "isNew"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("isNew %q: %w", raw, err)
		}
		p.IsNew = v
	}
	if raw := pick(record, index, "stock"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("stock %q: %w", raw, err)
		}
		p.Stock = n
		p.InStock = n > 0
	}
	if raw := pick(record, index, "rating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("rating %q: %w", raw, err)
		}
		p.Rating = v
	}
	if raw := pick(record, index, "features"); raw != "" {
		for _, f := range strings.Split(raw, ";") {
			if f = strings.TrimSpace(f); f != "" {
				p.Features = append(p.Features, f)
			}
		}
	}

	row := &csvRow{product: p}
	if image != "" {
		row.images = []string{image}
	}
	return row, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func titleCase(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
