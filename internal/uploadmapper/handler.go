package uploadmapper

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"mapper-backend/internal/config"
	"mapper-backend/internal/database"
	"mapper-backend/internal/models"
	"mapper-backend/internal/pricing"

	"github.com/gofiber/fiber/v2"
)

type JobResponse struct {
	ID            uint   `json:"id"`
	Solution      string `json:"solution"`
	MarketCode    string `json:"market_code"`
	SourceFile    string `json:"source_file"`
	ResultFile    string `json:"result_file"`
	TotalRows     int    `json:"total_rows"`
	MappedRows    int    `json:"mapped_rows"`
	CorrectedRows int    `json:"corrected_rows"`
	Status        string `json:"status"`
	ErrorMessage  string `json:"error_message,omitempty"`
	CreatedAt     string `json:"created_at"`
}

func jobResponse(job models.UploadJob) JobResponse {
	return JobResponse{
		ID:            job.ID,
		Solution:      job.Solution,
		MarketCode:    job.MarketCode,
		SourceFile:    job.SourceFile,
		ResultFile:    job.ResultFile,
		TotalRows:     job.TotalRows,
		MappedRows:    job.MappedRows,
		CorrectedRows: job.CorrectedRows,
		Status:        string(job.Status),
		ErrorMessage:  job.ErrorMessage,
		CreatedAt:     job.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/mapping/solutions
func ListSolutionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"solutions": SolutionNames()})
	}
}

// POST /api/mapping/jobs (multipart)
// Fields: solution, market_code; files: processed (required), template
// (optional pre-built solution sheet).
func CreateJobHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		solutionName := c.FormValue("solution")
		solution, ok := GetSolution(solutionName)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "unknown solution: "+solutionName)
		}

		marketCode := c.FormValue("market_code")

		procHeader, err := c.FormFile("processed")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "processed file is required")
		}

		procFile, err := procHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not open processed file")
		}
		defer procFile.Close()

		_, processed, err := ReadSheet(procFile)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "processed file: "+err.Error())
		}

		// Optional pre-built solution sheet; rows are synthesized from the
		// processed sheet when absent.
		var result []Row
		if tmplHeader, err := c.FormFile("template"); err == nil {
			tmplFile, err := tmplHeader.Open()
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "could not open template file")
			}
			defer tmplFile.Close()

			_, result, err = ReadSheet(tmplFile)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "template file: "+err.Error())
			}
		} else {
			result = newResultRows(processed, solution.Columns(), solution.CodeColumn())
		}

		mapCfg := MappingConfig{
			MarketCode:       marketCode,
			ShippingMethod:   pricing.ShippingStandard,
			DetailBottomText: c.FormValue("detail_bottom_text"),
		}

		// Per-market settings override the defaults when the market exists.
		if marketCode != "" {
			var market models.Market
			if err := database.DB.Where("code = ? AND active = ?", marketCode, true).First(&market).Error; err == nil {
				mapCfg.ShippingMethod = pricing.ShippingMethod(market.ShippingMethod)
				mapCfg.Pricing = pricing.PricingConfig{
					MarginRate:     market.MarginRate,
					CommissionRate: market.CommissionRate,
					DiscountRate:   market.DiscountRate,
				}
			}
		}

		job := models.UploadJob{
			Solution:   solutionName,
			MarketCode: marketCode,
			SourceFile: procHeader.Filename,
			Status:     models.UploadJobPending,
		}
		if err := database.DB.Create(&job).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create job")
		}

		mapCfg.OnCorrection = func(code string, marketPrice float64, original, corrected string, res pricing.CorrectionResult) {
			jobID := job.ID
			entry := models.CorrectionLog{
				UploadJobID:   &jobID,
				ProductCode:   code,
				MarketPrice:   marketPrice,
				MaxDelta:      res.MaxDelta,
				OriginalText:  original,
				CorrectedText: corrected,
				LinesChanged:  res.LinesChanged,
			}
			if err := database.DB.Create(&entry).Error; err != nil {
				log.Printf("correction log for %s not saved: %v", code, err)
			}
		}

		result, stats := solution.ApplyRules(result, processed, mapCfg)

		if err := os.MkdirAll(cfg.ResultDir, 0755); err != nil {
			return failJob(c, &job, fmt.Errorf("could not create result dir: %w", err))
		}

		resultName := fmt.Sprintf("%s_%s_%d.xlsx", solutionName, time.Now().Format("20060102"), job.ID)
		resultPath := filepath.Join(cfg.ResultDir, resultName)
		if err := WriteSheet(resultPath, solution.Columns(), result); err != nil {
			return failJob(c, &job, err)
		}

		job.ResultFile = resultName
		job.TotalRows = stats.TotalRows
		job.MappedRows = stats.MappedRows
		job.CorrectedRows = stats.CorrectedRows
		job.Status = models.UploadJobDone
		if err := database.DB.Save(&job).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update job")
		}

		return c.Status(fiber.StatusCreated).JSON(jobResponse(job))
	}
}

func failJob(c *fiber.Ctx, job *models.UploadJob, cause error) error {
	job.Status = models.UploadJobFailed
	job.ErrorMessage = cause.Error()
	if err := database.DB.Save(job).Error; err != nil {
		log.Printf("could not mark job %d failed: %v", job.ID, err)
	}
	return fiber.NewError(fiber.StatusInternalServerError, cause.Error())
}

// GET /api/mapping/jobs
func ListJobsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var jobs []models.UploadJob
		if err := database.DB.Order("created_at DESC").Limit(200).Find(&jobs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list jobs")
		}

		resp := make([]JobResponse, 0, len(jobs))
		for _, job := range jobs {
			resp = append(resp, jobResponse(job))
		}
		return c.JSON(resp)
	}
}

// GET /api/mapping/jobs/:id/download
func DownloadJobResultHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var job models.UploadJob
		if err := database.DB.First(&job, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "job not found")
		}
		if job.Status != models.UploadJobDone || job.ResultFile == "" {
			return fiber.NewError(fiber.StatusConflict, "job has no result file")
		}

		return c.Download(filepath.Join(cfg.ResultDir, job.ResultFile), job.ResultFile)
	}
}
