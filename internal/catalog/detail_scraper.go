package catalog

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"mapper-backend/internal/config"
	"mapper-backend/internal/database"
	"mapper-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SupplierProductInfo holds the fields scraped from a supplier detail page.
type SupplierProductInfo struct {
	Code     string
	Name     string
	ImageURL string
}

var (
	titleRe  = regexp.MustCompile(`<title>(.*?)</title>`)
	h1Re     = regexp.MustCompile(`<h1[^>]*>(.*?)</h1>`)
	ogImgRe  = regexp.MustCompile(`<meta[^>]+property=["']og:image["'][^>]+content=["']([^"']+)["']`)
	imgTagRe = regexp.MustCompile(`<img[^>]+src=["']([^"']+)["'][^>]*>`)
	tagRe    = regexp.MustCompile(`<[^>]+>`)
)

// ScrapeSupplierDetailPage fetches a supplier product detail page and
// extracts the product name and primary image URL.
func ScrapeSupplierDetailPage(pageURL, code string) (*SupplierProductInfo, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	req, err := http.NewRequest("GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("could not build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	htmlBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read body: %w", err)
	}
	htmlContent := string(htmlBytes)

	info := &SupplierProductInfo{Code: code}

	// Product name: prefer the first meaningful h1, fall back to the page
	// title.
	for _, m := range h1Re.FindAllStringSubmatch(htmlContent, -1) {
		if len(m) > 1 {
			name := cleanHTMLText(m[1])
			if len(name) > 2 {
				info.Name = name
				break
			}
		}
	}
	if info.Name == "" {
		if m := titleRe.FindStringSubmatch(htmlContent); len(m) > 1 {
			info.Name = cleanHTMLText(m[1])
		}
	}

	// Primary image: og:image wins, otherwise the first real product image.
	if m := ogImgRe.FindStringSubmatch(htmlContent); len(m) > 1 {
		info.ImageURL = absoluteImageURL(m[1], pageURL)
	} else {
		for _, m := range imgTagRe.FindAllStringSubmatch(htmlContent, -1) {
			if len(m) < 2 {
				continue
			}
			src := strings.ToLower(m[1])
			if strings.Contains(src, "placeholder") ||
				strings.Contains(src, "icon") ||
				strings.Contains(src, "logo") ||
				strings.Contains(src, "avatar") {
				continue
			}
			info.ImageURL = absoluteImageURL(m[1], pageURL)
			break
		}
	}

	if info.Name == "" {
		return nil, fmt.Errorf("product name not found on page")
	}
	return info, nil
}

func cleanHTMLText(s string) string {
	s = tagRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&quot;", "\"")
	s = strings.ReplaceAll(s, "&#39;", "'")
	return strings.TrimSpace(s)
}

func absoluteImageURL(src, pageURL string) string {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return src
	}
	if strings.HasPrefix(src, "//") {
		return "https:" + src
	}
	if strings.HasPrefix(src, "/") {
		if i := strings.Index(pageURL, "://"); i > 0 {
			if j := strings.Index(pageURL[i+3:], "/"); j > 0 {
				return pageURL[:i+3+j] + src
			}
		}
	}
	return src
}

// DownloadProductImage saves a product image next to the other listing
// images, named by product code. Existing files are reused, not re-fetched.
func DownloadProductImage(imageURL, code, saveDir string) (string, error) {
	if imageURL == "" || code == "" {
		return "", fmt.Errorf("image URL and product code are required")
	}

	filePath := filepath.Join(saveDir, code+".jpg")
	if _, err := os.Stat(filePath); err == nil {
		return filePath, nil
	}

	client := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequest("GET", imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("could not build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("could not download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image download error: %d", resp.StatusCode)
	}

	if err := os.MkdirAll(saveDir, 0755); err != nil {
		return "", fmt.Errorf("could not create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("could not create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return "", fmt.Errorf("could not write image: %w", err)
	}

	return filePath, nil
}

type ScrapeRequest struct {
	URL string `json:"url"`
}

// POST /api/admin/products/:id/scrape — refresh a product's name and image
// from its supplier detail page.
func ScrapeProductHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}

		var body ScrapeRequest
		if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.URL) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "url is required")
		}

		info, err := ScrapeSupplierDetailPage(strings.TrimSpace(body.URL), p.Code)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "scrape failed: "+err.Error())
		}

		p.SupplierName = info.Name
		if info.ImageURL != "" {
			p.ImageURL = info.ImageURL
			// Image download failures are not fatal; the URL is kept.
			if _, err := DownloadProductImage(info.ImageURL, p.Code, cfg.ProductImgDir); err != nil {
				log.Println("[WARN] image download failed:", err)
			}
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update product")
		}

		return c.JSON(productResponse(p))
	}
}
