package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jjenkins/mateng/internal/model"
	"github.com/jjenkins/mateng/internal/templates"
)

var achievements = []model.Achievement{
	{
		ID:    1,
		Title: "50,000+ Successful Deliveries",
		Description: "We've delivered packages across communities through our hyperlocal delivery network, and are now expanding " +
			"our logistics services from Imphal to other states, while continuing to provide fast, same-day last-mile delivery across Manipur.",
		ImageURL: "https://lhzwholxmjolpinyxxsz.supabase.co/storage/v1/object/public/competition_documents/aadhaar/4.png",
		Icon:     "gallery-horizontal",
	},
	{
		ID:    2,
		Title: "Educational Impact",
		Description: "This is our new vertical, created to empower entrepreneurs, students, and driven individuals (anyone with the " +
			"hustle to succeed) by helping them build expertise in their fields and turn their ambitions into achievements.",
		ImageURL: "https://lhzwholxmjolpinyxxsz.supabase.co/storage/v1/object/public/competition_documents/aadhaar/IMG_0739.jpg",
		Icon:     "image",
	},
	{
		ID:    3,
		Title: "Open Marketplace",
		Description: "Our Open Marketplace has connected over 200 sellers, enabling them to showcase and sell their products through " +
			"our platform. We also facilitate seamless logistics by leveraging our efficient delivery channels, ensuring smooth " +
			"transactions for both sellers and customers.",
		ImageURL: "https://lhzwholxmjolpinyxxsz.supabase.co/storage/v1/object/public/competition_documents/aadhaar/5.png",
		Icon:     "gallery-horizontal",
	},
}

// achievementRoutes maps an achievement card to the page its "Learn More" opens
var achievementRoutes = map[int]string{
	1: "/delivery",
	2: "/education",
	3: "/marketplace",
}

var verticals = map[string]model.Vertical{
	"delivery": {
		Slug:    "delivery",
		Name:    "Delivery",
		Tagline: "Same-day last-mile delivery across Manipur",
		Body:    "Our hyperlocal network moves parcels for households and businesses across Imphal and beyond, with logistics now expanding to other states.",
	},
	"education": {
		Slug:    "education",
		Name:    "Education",
		Tagline: "Build expertise, turn ambition into achievement",
		Body:    "Workshops, competitions such as the Mental Maths Competition, and mentoring for students and entrepreneurs.",
	},
	"marketplace": {
		Slug:    "marketplace",
		Name:    "Marketplace",
		Tagline: "200+ local sellers, one platform",
		Body:    "Sellers showcase and sell their products online while our delivery channels handle the logistics.",
	},
}

// AchievementRoute returns the page an achievement card links to
func AchievementRoute(id int) (string, bool) {
	route, ok := achievementRoutes[id]
	return route, ok
}

func HomeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return render(c, fiber.StatusOK, templates.Home(achievements))
	}
}

func AchievementRedirectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).SendString("Invalid achievement")
		}

		route, ok := AchievementRoute(id)
		if !ok {
			return c.Status(fiber.StatusNotFound).SendString("Achievement not found")
		}

		return c.Redirect(route, fiber.StatusFound)
	}
}

func VerticalHandler(slug string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, ok := verticals[slug]
		if !ok {
			return c.Status(fiber.StatusNotFound).SendString("Page not found")
		}
		return render(c, fiber.StatusOK, templates.VerticalPage(v))
	}
}
