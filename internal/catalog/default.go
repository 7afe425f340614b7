package catalog

// Topping taxonomy used by the built-in menu.
var (
	BaseSauces      = []string{"Tomato Sauce", "BBQ Sauce", "Pasta Sauce"}
	Cheeses         = []string{"Mozzarella", "Extra Mozzarella", "Cheddar", "Feta", "Parmesan"}
	Meats           = []string{"Donair Meat", "Pepperoni", "Salami", "Italian Sausage", "Ham", "Bacon", "Ground Beef", "Steak", "Chicken", "Crispy Chicken"}
	OtherToppings   = []string{"Mushrooms", "Green Pepper", "Onion", "Tomato", "Hot Peppers", "Olives", "Jalapeño Peppers", "Pineapple"}
	FinishingSauces = []string{"Donair Sauce", "Dipping Sauce", "Caesar Dressing", "Ranch Dressing", "Garlic Butter"}
	Spices          = []string{"Oregano"}
)

func defaultCategories() []Category {
	return []Category{
		{Title: "Base Sauces", Toppings: BaseSauces},
		{Title: "Cheeses", Toppings: Cheeses},
		{Title: "Meats", Toppings: Meats},
		{Title: "Other Toppings", Toppings: OtherToppings},
		{Title: "Finishing Sauces", Toppings: FinishingSauces},
		{Title: "Spices", Toppings: Spices},
	}
}

func defaultItems() []Item {
	return []Item{
		{
			Name:     "Tony's famous donair pizza",
			Toppings: []string{"Tomato Sauce", "Donair Meat", "Onion", "Tomato", "Dipping Sauce", "Mozzarella"},
			Mnemonic: "Drench the crust in a flowing river of Tomato Sauce, spin Donair Meat carousels across it, " +
				"float Onion ring boats and Tomato rafts, pour cascading Dipping Sauce waterfalls, " +
				"and watch Mozzarella snow settle on top.",
		},
		{
			Name:     "Italian meat lovers pizza",
			Toppings: []string{"Tomato Sauce", "Pepperoni", "Salami", "Italian Sausage", "Ham", "Bacon", "Mozzarella"},
			Mnemonic: "Spread a sea of Tomato Sauce, plant Pepperoni lily pads, wave Salami flags, " +
				"roll sausage carts, build Ham hamlets, lay Bacon bridges, all under a Mozzarella sky.",
		},
		{
			Name:     "BBQ chicken pizza",
			Toppings: []string{"BBQ Sauce", "Chicken", "Onion", "Green Pepper", "Mozzarella"},
			Mnemonic: "Erupt a BBQ Sauce volcano, skewer Chicken drumsticks on its slopes, " +
				"send Onion smoke rings aloft, sprinkle Green Pepper confetti, and let Mozzarella lava flow down.",
		},
		{
			Name:     "Tony's special pizza",
			Toppings: []string{"Tomato Sauce", "Pepperoni", "Salami", "Bacon", "Mushrooms", "Onion", "Green Pepper", "Extra Mozzarella"},
			Mnemonic: "Paint the base with Tomato Sauce paint, flip Pepperoni discs and Salami shields in the air, " +
				"roll Bacon logs, carve Mushroom huts, raise Onion towers and Green Pepper flags, " +
				"then blanket everything in Extra Mozzarella snow.",
		},
		{
			Name:     "Veggie Pizza",
			Toppings: []string{"Tomato Sauce", "Mushrooms", "Green Pepper", "Onion", "Olives", "Tomato", "Mozzarella"},
			Mnemonic: "Plow fields of Tomato Sauce soil, plant Mushroom cap trees and Green Pepper vines, " +
				"sprout Onion bulb flowers, reflect in Olive ponds, hide Tomato suns behind Mozzarella clouds.",
		},
		{
			Name:     "chicken CAESAR pizza",
			Toppings: []string{"Tomato Sauce", "Caesar Dressing", "Chicken", "Bacon", "Onion", "Mozzarella"},
			Mnemonic: "Moat the castle in Tomato Sauce, drizzle Caesar Dressing rain, " +
				"raise Chicken knight sentries and Bacon banner guards, fortify Onion keep walls, " +
				"and pave the courtyard with melted Mozzarella.",
		},
		{
			Name:     "chicken PEPPERCORN pizza",
			Toppings: []string{"Pasta Sauce", "Chicken", "Onion", "Green Pepper", "Mushrooms", "Tomato", "Mozzarella", "Parmesan", "Ranch Dressing"},
			Mnemonic: "Sail Chicken galleons down a Pasta Sauce river, pass under Onion archways, " +
				"march through Green Pepper forests and Mushroom hills, land on Tomato islands, " +
				"fortify with Mozzarella walls, crown with Parmesan towers, and drench the scene in Ranch Dressing mist.",
		},
		{
			Name:     "bacon cheese burger pizza",
			Toppings: []string{"Tomato Sauce", "Ground Beef", "Cheddar", "Mozzarella", "Onion", "Bacon"},
			Mnemonic: "Lay down a blanket of Tomato Sauce, stack Ground Beef ramparts, span Cheddar drawbridges, " +
				"dig a Mozzarella moat, erect Onion ring watchtowers, and line the walls with Bacon logs.",
		},
		{
			Name:     "chicken PARMESAN pizza",
			Toppings: []string{"Tomato Sauce", "Crispy Chicken", "Parmesan", "Mozzarella"},
			Mnemonic: "Carve a canal of Tomato Sauce, march Crispy Chicken knights along its banks, " +
				"cross the Mozzarella plains, to plant Parmesan flags on distant hills.",
		},
		{
			Name:     "NEW YORK STEAK pizza",
			Toppings: []string{"Tomato Sauce", "Steak", "Onion", "Mushrooms", "Green Pepper", "Mozzarella", "Cheddar", "Garlic Butter"},
			Mnemonic: "Erect Steak skyscrapers on a Tomato Sauce avenue, light the streets with Onion lamps, " +
				"grow Mushroom parks and Pepper plazas, under Mozzarella cloudbursts, gaze at Cheddar sunsets, " +
				"and glide on Garlic Butter streets.",
		},
		{
			Name:     "WORLD FAMOUS pizza",
			Toppings: []string{"Donair Meat", "Pepperoni", "Mozzarella", "Garlic Butter", "Donair Sauce"},
			Mnemonic: "Chart Donair Meat continents and Pepperoni islands, drift across Mozzarella oceans, " +
				"surf Garlic Butter waves, and shower the land with Donair Sauce rain.",
		},
	}
}

// Default returns the built-in menu.
func Default() *Catalog {
	c, err := New(defaultItems(), defaultCategories())
	if err != nil {
		panic("catalog: built-in menu is invalid: " + err.Error())
	}
	return c
}
