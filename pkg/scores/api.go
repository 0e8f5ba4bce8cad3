package scores

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/speechscaling/scaling_engine/config"
	"github.com/speechscaling/scaling_engine/internal/report"
)

type ScoresAPI struct {
	reporter *report.Reporter
	cfg      *config.ScalingConfig
}

func NewScoresAPI(reporter *report.Reporter, cfg *config.ScalingConfig) *ScoresAPI {
	return &ScoresAPI{reporter: reporter, cfg: cfg}
}

func (api *ScoresAPI) RegisterRoutes(app *fiber.App) {
	app.Get("/scores", api.scoresHandler)
	app.Get("/scores/:country", api.countryHandler)
}

func (api *ScoresAPI) scoresHandler(c *fiber.Ctx) error {
	fromYear, err := strconv.Atoi(c.Query("from", strconv.Itoa(api.cfg.StartYear)))
	if err != nil {
		fromYear = api.cfg.StartYear
	}
	toYear, err := strconv.Atoi(c.Query("to", strconv.Itoa(api.cfg.EndYear)))
	if err != nil {
		toYear = api.cfg.EndYear
	}

	records, err := api.reporter.FetchScores(context.Background(), fromYear, toYear)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Fetch failed: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"from":    fromYear,
		"to":      toYear,
		"total":   len(records),
		"results": toPayload(records),
	})
}

func (api *ScoresAPI) countryHandler(c *fiber.Ctx) error {
	country := c.Params("country")
	records, err := api.reporter.FetchCountry(context.Background(), country)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Fetch failed: " + err.Error(),
		})
	}
	if len(records) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no scores for country " + country,
		})
	}

	return c.JSON(fiber.Map{
		"country": country,
		"total":   len(records),
		"results": toPayload(records),
	})
}

type scorePayload struct {
	Country   string   `json:"country"`
	Session   int      `json:"session"`
	Year      int      `json:"year"`
	Wordscore *float64 `json:"wordscore"`
}

// toPayload maps NULL wordscores to JSON null rather than 0.
func toPayload(records []report.ScoreRecord) []scorePayload {
	payload := make([]scorePayload, len(records))
	for i, rec := range records {
		p := scorePayload{
			Country: rec.Country,
			Session: rec.Session,
			Year:    rec.Year,
		}
		if rec.Wordscore.Valid {
			v := rec.Wordscore.Float64
			p.Wordscore = &v
		}
		payload[i] = p
	}
	return payload
}
