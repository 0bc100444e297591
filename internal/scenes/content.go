package scenes

import "github.com/ivlev/motion2video/internal/renderer"

type modelCard struct {
	name, company string
	color         renderer.Color
}

func modelLineup(p renderer.Palette) []modelCard {
	return []modelCard{
		{"GPT-4", "OpenAI", p.AccentGreen},
		{"Claude", "Anthropic", p.AccentOrange},
		{"Gemini", "Google", p.AccentBlue},
		{"Mistral", "Mistral AI", p.AccentPurple},
		{"LLaMA", "Meta", p.AccentCyan},
	}
}

type routeNode struct {
	name   string
	dx, dy float64 // offset from the hub
	color  renderer.Color
}

func routeNodes(p renderer.Palette) []routeNode {
	return []routeNode{
		{"GPT-4", -280, -120, p.AccentGreen},
		{"Claude", -280, 120, p.AccentOrange},
		{"Gemini", 280, -120, p.AccentBlue},
		{"Mistral", 280, 120, p.AccentPurple},
		{"LLaMA", 0, -220, p.AccentCyan},
	}
}

var routeRequests = []string{"Code", "Analyse", "Creative", "Recherche"}

type scoreCard struct {
	name   string
	color  renderer.Color
	scores []float64
}

var scoreCategories = []string{"Precision", "Vitesse", "Creativite", "Raisonnement"}

func scoreCards(p renderer.Palette) []scoreCard {
	return []scoreCard{
		{"GPT-4", p.AccentGreen, []float64{85, 92, 78, 88}},
		{"Claude", p.AccentOrange, []float64{90, 88, 95, 82}},
		{"Gemini", p.AccentBlue, []float64{82, 85, 80, 90}},
	}
}

type plan struct {
	name, badge, price string
	features           []string
	color              renderer.Color
	highlighted        bool
}

func pricingPlans(p renderer.Palette) []plan {
	return []plan{
		{"Starter", "Gratuit", "0 EUR", []string{"100 requetes/jour", "3 modeles", "API basique"}, p.AccentBlue, false},
		{"Pro", "Populaire", "29 EUR/mois", []string{"Illimite", "Tous les modeles", "API avancee", "Support prioritaire"}, p.AccentPurple, true},
		{"Enterprise", "Sur mesure", "Custom", []string{"Volume illimite", "Modeles prives", "SLA garanti", "Support dedie"}, p.AccentCyan, false},
	}
}

var outroPills = []string{"Multi-Model", "API Unifiee", "Routing IA", "Temps Reel"}

const (
	modelsTitle     = "Modeles IA Disponibles"
	modelsSubtitle  = "Acces unifie aux meilleurs modeles d'intelligence artificielle"
	routingTitle    = "Routing Intelligent"
	routingSubtitle = "Chaque requete est automatiquement dirigee vers le modele optimal"
	compareTitle    = "Comparaison de Modeles"
	compareSubtitle = "Comparez les performances en temps reel"
	pricingTitle    = "Tarification Simple et Transparente"
	statusLabel     = "Disponible"
	planButton      = "Commencer"
	hubLabel        = "Router"
)
