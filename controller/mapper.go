package controller

import (
	"crux/app_error"

	"github.com/gin-gonic/gin"
)

func handleServiceError(c *gin.Context, err error) {
	app_error.Handle(c, err)
}
