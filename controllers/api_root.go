package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// APIRootController serves the discovery document linking every collection endpoint.
type APIRootController struct {
	BaseURL   string
	Resources []string
}

func NewAPIRootController(baseURL string, resources []string) *APIRootController {
	return &APIRootController{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		Resources: resources,
	}
}

// Links maps each resource name to its fully qualified collection URL.
func (rc *APIRootController) Links() map[string]string {
	links := make(map[string]string, len(rc.Resources))
	for _, name := range rc.Resources {
		links[name] = rc.BaseURL + "/api/" + name + "/"
	}
	return links
}

func (rc *APIRootController) Index(c *fiber.Ctx) error {
	return c.JSON(rc.Links())
}
