package db

import (
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/sajib4386/Asset-verse-Server/models"
	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

func InitPreload() {
	fillSubscriptionPlans()
}

func fillSubscriptionPlans() {
	plans := []dbmodels.SubscriptionPlan{
		{Name: models.PlanBasic, MemberLimit: 5, Price: decimal.NewFromInt(5), Currency: "USD"},
		{Name: models.PlanStandard, MemberLimit: 10, Price: decimal.NewFromInt(8), Currency: "USD"},
		{Name: models.PlanPremium, MemberLimit: 20, Price: decimal.NewFromInt(15), Currency: "USD"},
	}
	for _, plan := range plans {
		var rowCount int64
		err := DB.Model(&dbmodels.SubscriptionPlan{}).
			Where("name = ?", plan.Name).
			Count(&rowCount).
			Error
		if err != nil {
			log.WithError(err).Error("subscription plan preload failed")
			return
		}
		if rowCount != 0 {
			continue
		}
		if err = DB.Create(&plan).Error; err != nil {
			log.WithError(err).
				WithField("plan", plan.Name).
				Error("subscription plan preload failed")
		}
	}
}
