package main

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/fridgechef/backend/config"
	"github.com/pageza/fridgechef/backend/internal/database"
	"github.com/pageza/fridgechef/backend/internal/models"
	"github.com/pageza/fridgechef/backend/internal/service"
)

type seedIngredient struct {
	Name     string
	Category string
	Synonyms []string
}

// Starter catalog grouped roughly by shopping aisle. Names are stored
// normalized so lookups from user input hit without extra work.
var catalog = []seedIngredient{
	// Produce
	{"tomato", "produce", []string{"roma tomato", "plum tomato"}},
	{"cherry tomato", "produce", nil},
	{"onion", "produce", []string{"yellow onion", "white onion"}},
	{"red onion", "produce", nil},
	{"scallion", "produce", []string{"green onion", "spring onion"}},
	{"garlic", "produce", []string{"garlic clove"}},
	{"carrot", "produce", nil},
	{"celery", "produce", nil},
	{"bell pepper", "produce", []string{"sweet pepper", "capsicum"}},
	{"jalapeno", "produce", []string{"jalapeno pepper"}},
	{"potato", "produce", []string{"russet potato"}},
	{"sweet potato", "produce", []string{"yam"}},
	{"spinach", "produce", []string{"baby spinach"}},
	{"kale", "produce", nil},
	{"broccoli", "produce", nil},
	{"cauliflower", "produce", nil},
	{"zucchini", "produce", []string{"courgette"}},
	{"mushroom", "produce", []string{"button mushroom", "cremini mushroom"}},
	{"cucumber", "produce", nil},
	{"avocado", "produce", nil},
	{"lemon", "produce", nil},
	{"lime", "produce", nil},
	{"ginger", "produce", []string{"fresh ginger"}},
	{"cilantro", "produce", []string{"coriander", "fresh coriander"}},
	{"parsley", "produce", []string{"flat leaf parsley"}},
	{"basil", "produce", []string{"fresh basil"}},
	{"thyme", "produce", nil},
	{"rosemary", "produce", nil},

	// Protein
	{"chicken breast", "protein", []string{"boneless chicken breast"}},
	{"chicken thigh", "protein", nil},
	{"ground beef", "protein", []string{"minced beef", "hamburger meat"}},
	{"pork chop", "protein", nil},
	{"bacon", "protein", nil},
	{"salmon", "protein", []string{"salmon fillet"}},
	{"shrimp", "protein", []string{"prawns"}},
	{"tofu", "protein", []string{"firm tofu"}},
	{"egg", "protein", []string{"eggs", "large egg"}},
	{"chickpea", "protein", []string{"garbanzo bean"}},
	{"black bean", "protein", nil},
	{"lentil", "protein", []string{"red lentil", "green lentil"}},

	// Dairy
	{"milk", "dairy", []string{"whole milk", "2 milk"}},
	{"butter", "dairy", []string{"unsalted butter"}},
	{"heavy cream", "dairy", []string{"whipping cream", "double cream"}},
	{"cheddar cheese", "dairy", []string{"cheddar"}},
	{"parmesan cheese", "dairy", []string{"parmesan", "parmigiano reggiano"}},
	{"mozzarella cheese", "dairy", []string{"mozzarella"}},
	{"cream cheese", "dairy", nil},
	{"greek yogurt", "dairy", []string{"plain yogurt"}},
	{"sour cream", "dairy", nil},

	// Pantry
	{"olive oil", "pantry", []string{"extra virgin olive oil"}},
	{"vegetable oil", "pantry", []string{"canola oil"}},
	{"salt", "pantry", []string{"kosher salt", "sea salt"}},
	{"black pepper", "pantry", []string{"ground black pepper"}},
	{"flour", "pantry", []string{"all purpose flour", "plain flour"}},
	{"sugar", "pantry", []string{"granulated sugar", "white sugar"}},
	{"brown sugar", "pantry", nil},
	{"rice", "pantry", []string{"white rice", "long grain rice"}},
	{"pasta", "pantry", []string{"spaghetti", "penne"}},
	{"bread", "pantry", []string{"sandwich bread"}},
	{"soy sauce", "pantry", nil},
	{"honey", "pantry", nil},
	{"vinegar", "pantry", []string{"white vinegar"}},
	{"balsamic vinegar", "pantry", nil},
	{"tomato paste", "pantry", nil},
	{"canned tomato", "pantry", []string{"diced tomatoes", "crushed tomatoes"}},
	{"chicken broth", "pantry", []string{"chicken stock"}},
	{"vegetable broth", "pantry", []string{"vegetable stock"}},
	{"coconut milk", "pantry", nil},
	{"peanut butter", "pantry", nil},
	{"oats", "pantry", []string{"rolled oats", "old fashioned oats"}},
	{"baking powder", "pantry", nil},
	{"baking soda", "pantry", []string{"bicarbonate of soda"}},
	{"vanilla extract", "pantry", nil},
	{"cumin", "pantry", []string{"ground cumin"}},
	{"paprika", "pantry", []string{"smoked paprika"}},
	{"chili powder", "pantry", nil},
	{"oregano", "pantry", []string{"dried oregano"}},
	{"cinnamon", "pantry", []string{"ground cinnamon"}},
	{"curry powder", "pantry", nil},
	{"turmeric", "pantry", nil},
	{"red pepper flakes", "pantry", []string{"crushed red pepper"}},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	created, err := seedCatalog(db)
	if err != nil {
		log.Fatalf("Failed to seed ingredient catalog: %v", err)
	}

	log.Printf("[Seed] Ingredient catalog ready, %d new ingredients created", created)
}

// seedCatalog inserts the starter ingredients, skipping any whose
// normalized name already exists. Re-running the command is safe.
func seedCatalog(db *gorm.DB) (int, error) {
	created := 0
	for _, entry := range catalog {
		ingredient := models.Ingredient{
			Name:     service.NormalizeIngredientName(entry.Name),
			Category: entry.Category,
			Synonyms: normalizeSynonyms(entry.Synonyms),
		}
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&ingredient)
		if result.Error != nil {
			return created, result.Error
		}
		created += int(result.RowsAffected)
	}
	return created, nil
}

func normalizeSynonyms(synonyms []string) models.JSONBStringArray {
	normalized := models.JSONBStringArray{}
	for _, s := range synonyms {
		if n := service.NormalizeIngredientName(s); n != "" {
			normalized = append(normalized, n)
		}
	}
	return normalized
}
