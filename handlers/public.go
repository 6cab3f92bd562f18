package handlers

import (
	"net/http"
	"time"

	"mug-life-api/catalog"
	"mug-life-api/models"
	"mug-life-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetMenu returns the full menu with add-on prices and today's special
func GetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"menu":     catalog.Menu(),
		"add_ons":  catalog.AddOnMenu(),
		"sizes":    catalog.Sizes(),
		"special":  catalog.SpecialFor(time.Now().Weekday()),
		"branches": models.AllBranches(),
	})
}

// GetDailySpecial returns today's automatic discount
func GetDailySpecial(c *gin.Context) {
	now := time.Now()
	c.JSON(http.StatusOK, gin.H{
		"day":     now.Weekday().String(),
		"special": catalog.SpecialFor(now.Weekday()),
	})
}

// GetStateMachineInfo returns the full order lifecycle for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []models.OrderStatus{models.StatusPickedUp},
		"description":     "Coffee Order Lifecycle State Machine",
	})
}
