package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CSVImportUsecase bulk-creates products from CSV input. Each row goes
// through the normal create path; a bad row is collected as a per-line
// error without aborting the rest of the batch.
type CSVImportUsecase struct {
	products *ProductUsecase
	logger   *zap.Logger
}

func NewCSVImportUsecase(products *ProductUsecase, logger *zap.Logger) *CSVImportUsecase {
	return &CSVImportUsecase{
		products: products,
		logger:   logger,
	}
}

type ImportResult struct {
	BatchID      string   `json:"batch_id"`
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors"`
}

// ImportProducts reads CSV rows of name,category,price,quantity. The first
// row is a header and must have at least 4 columns.
func (u *CSVImportUsecase) ImportProducts(ctx context.Context, r io.Reader) (ImportResult, error) {
	batchID := uuid.NewString()
	log := u.logger.With(zap.String("batch_id", batchID))

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, NewHTTPError(http.StatusBadRequest, "invalid csv: missing header row")
	}
	if len(header) < 4 {
		return ImportResult{}, NewHTTPError(http.StatusBadRequest,
			"csv must have at least 4 columns: name, category, price, quantity")
	}

	result := ImportResult{
		BatchID: batchID,
		Errors:  []string{},
	}

	lineNumber := 1 // header was line 1
	for {
		line, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		lineNumber++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Line %d: %v", lineNumber, err))
			continue
		}

		in, err := parseCSVLine(line)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Line %d: %v", lineNumber, err))
			continue
		}

		p, err := u.products.CreateProduct(ctx, in)
		if err != nil {
			msg := err.Error()
			if he, ok := AsHTTPError(err); ok {
				msg = he.Message
			}
			result.Errors = append(result.Errors, fmt.Sprintf("Line %d: %s", lineNumber, msg))
			continue
		}

		result.SuccessCount++
		log.Info("imported product", zap.Int64("id", p.ID), zap.String("name", p.Name))
	}

	result.ErrorCount = len(result.Errors)
	log.Info("csv import finished",
		zap.Int("success", result.SuccessCount),
		zap.Int("errors", result.ErrorCount))
	return result, nil
}

func parseCSVLine(line []string) (ProductInput, error) {
	if len(line) < 4 {
		return ProductInput{}, errors.New("line must have at least 4 columns")
	}

	priceStr := strings.TrimSpace(line[2])
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return ProductInput{}, fmt.Errorf("invalid price format: %s", priceStr)
	}

	quantityStr := strings.TrimSpace(line[3])
	quantity, err := strconv.ParseInt(quantityStr, 10, 64)
	if err != nil {
		return ProductInput{}, fmt.Errorf("invalid quantity format: %s", quantityStr)
	}

	return ProductInput{
		Name:     strings.TrimSpace(line[0]),
		Category: strings.TrimSpace(line[1]),
		Price:    price,
		Quantity: quantity,
	}, nil
}
