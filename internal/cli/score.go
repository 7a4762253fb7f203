package cli

import (
	"fmt"

	urfave "github.com/urfave/cli/v2"

	"github.com/bibbank/agriscore/internal/application/dto"
)

var (
	creditCmd = &urfave.Command{
		Name:    "credit",
		Aliases: []string{"c"},
		Usage:   "Score a borrower profile with the credit model",
		Action:  cmdCredit,
		Flags: []urfave.Flag{
			&urfave.Float64Flag{Name: "yield-history", Usage: "Historical yield"},
			&urfave.Float64Flag{Name: "sales-history", Usage: "Historical sales"},
			&urfave.Float64Flag{Name: "weather-data", Usage: "Weather index (default 0.5)"},
			&urfave.Float64Flag{Name: "land-area", Usage: "Land area"},
			&urfave.Float64Flag{Name: "soil-quality", Usage: "Soil quality (default 50)"},
			&urfave.Float64Flag{Name: "reputation", Usage: "Borrower reputation"},
			&urfave.StringFlag{Name: "crop-type", Usage: "rice, wheat, corn, sugarcane or cotton"},
		},
	}

	riskCmd = &urfave.Command{
		Name:    "risk",
		Aliases: []string{"r"},
		Usage:   "Assess loan risk",
		Action:  cmdRisk,
		Flags: []urfave.Flag{
			&urfave.Float64Flag{Name: "loan-amount", Usage: "Requested amount"},
			&urfave.Float64Flag{Name: "duration", Usage: "Loan duration in days"},
			&urfave.Float64Flag{Name: "borrower-credit-score", Usage: "Borrower credit score (default 300)"},
			&urfave.StringFlag{Name: "crop-type", Usage: "Crop type"},
			&urfave.StringFlag{Name: "season", Usage: "Season"},
			&urfave.Float64Flag{Name: "weather-forecast", Usage: "Weather forecast index (default 0.5)"},
			&urfave.Float64Flag{Name: "market-price", Usage: "Market price index"},
		},
	}

	yieldCmd = &urfave.Command{
		Name:    "yield",
		Aliases: []string{"y"},
		Usage:   "Predict crop yield",
		Action:  cmdYield,
		Flags: []urfave.Flag{
			&urfave.StringFlag{Name: "crop-type", Usage: "Crop type"},
			&urfave.Float64Flag{Name: "land-area", Usage: "Land area"},
			&urfave.Float64Flag{Name: "soil-quality", Usage: "Soil quality (default 50)"},
			&urfave.Float64Flag{Name: "weather-data", Usage: "Weather index (default 0.5)"},
			&urfave.BoolFlag{Name: "irrigation", Usage: "Field is irrigated"},
			&urfave.BoolFlag{Name: "fertilizer", Usage: "Field is fertilized"},
		},
	}

	trainCmd = &urfave.Command{
		Name:    "train",
		Aliases: []string{"t"},
		Usage:   "Train the credit model and print its identity",
		Action:  cmdTrain,
	}
)

func cmdCredit(c *urfave.Context) error {
	resp, err := getEngine(c).ScoreCredit.Execute(c.Context, dto.CreditScoreRequest{
		YieldHistory: optionalFloat(c, "yield-history"),
		SalesHistory: optionalFloat(c, "sales-history"),
		WeatherData:  optionalFloat(c, "weather-data"),
		LandArea:     optionalFloat(c, "land-area"),
		SoilQuality:  optionalFloat(c, "soil-quality"),
		Reputation:   optionalFloat(c, "reputation"),
		CropType:     optionalString(c, "crop-type"),
	})
	if err != nil {
		return fmt.Errorf("credit score: %w", err)
	}
	return encode(c, resp)
}

func cmdRisk(c *urfave.Context) error {
	req := dto.LoanRiskRequest{
		LoanAmount:          optionalFloat(c, "loan-amount"),
		Duration:            optionalFloat(c, "duration"),
		BorrowerCreditScore: optionalFloat(c, "borrower-credit-score"),
		CropType:            optionalString(c, "crop-type"),
		Season:              optionalString(c, "season"),
		WeatherForecast:     optionalFloat(c, "weather-forecast"),
		MarketPrice:         optionalFloat(c, "market-price"),
	}

	resp, err := getEngine(c).AssessRisk.Execute(c.Context, req)
	if err != nil {
		return fmt.Errorf("loan risk: %w", err)
	}
	return encode(c, resp)
}

func cmdYield(c *urfave.Context) error {
	resp, err := getEngine(c).PredictYield.Execute(c.Context, dto.YieldPredictionRequest{
		CropType:    optionalString(c, "crop-type"),
		LandArea:    optionalFloat(c, "land-area"),
		SoilQuality: optionalFloat(c, "soil-quality"),
		WeatherData: optionalFloat(c, "weather-data"),
		Irrigation:  optionalBool(c, "irrigation"),
		Fertilizer:  optionalBool(c, "fertilizer"),
	})
	if err != nil {
		return fmt.Errorf("yield prediction: %w", err)
	}
	return encode(c, resp)
}

func cmdTrain(c *urfave.Context) error {
	resp, err := getEngine(c).Retrain.Execute(c.Context)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}
	return encode(c, resp)
}
