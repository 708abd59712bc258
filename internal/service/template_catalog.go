package service

import "github.com/hearthapp/hearth/internal/domain"

// builtinTemplates is the catalog served by TemplateService.
var builtinTemplates = []domain.ProjectTemplate{
	{
		ID:              "birthday-party",
		Name:            "Birthday Party",
		Description:     "Plan and execute a birthday party",
		Category:        domain.TemplateEvent,
		EstimatedDays:   30,
		SuggestedBudget: 500,
		Tasks: []domain.TemplateTask{
			{Name: "Choose theme and guest list", Description: "Decide on party theme and create initial guest list", EstimatedHours: 2, DaysFromStart: day(3)},
			{Name: "Send invitations", Description: "Send invitations to all guests", EstimatedHours: 1, DaysFromStart: day(21), DependsOn: []string{"Choose theme and guest list"}},
			{Name: "Book venue or prepare home", Description: "Reserve venue or prepare home for party", EstimatedHours: 3, DaysFromStart: day(14), DependsOn: []string{"Choose theme and guest list"}},
			{Name: "Order cake", Description: "Order birthday cake from bakery", EstimatedHours: 1, DaysFromStart: day(10)},
			{Name: "Plan activities and games", Description: "Plan party activities, games, and entertainment", EstimatedHours: 2, DaysFromStart: day(14), DependsOn: []string{"Choose theme and guest list"}},
			{Name: "Buy decorations", Description: "Purchase party decorations", EstimatedHours: 2, DaysFromStart: day(7), DependsOn: []string{"Choose theme and guest list"}},
			{Name: "Buy party supplies", Description: "Purchase plates, cups, napkins, utensils", EstimatedHours: 1, DaysFromStart: day(5)},
			{Name: "Prepare food and drinks", Description: "Prepare or order food and beverages", EstimatedHours: 4, DaysFromStart: day(1)},
			{Name: "Set up party area", Description: "Decorate and set up party space", EstimatedHours: 3, DaysFromStart: day(0), DependsOn: []string{"Buy decorations", "Book venue or prepare home"}},
			{Name: "Party day execution", Description: "Host the party and coordinate activities", EstimatedHours: 4, DaysFromStart: day(0), DependsOn: []string{"Set up party area", "Prepare food and drinks", "Order cake"}},
		},
	},
	{
		ID:              "home-renovation",
		Name:            "Home Renovation",
		Description:     "Plan and execute a home renovation project",
		Category:        domain.TemplateHome,
		EstimatedDays:   90,
		SuggestedBudget: 10000,
		Tasks: []domain.TemplateTask{
			{Name: "Define scope and budget", Description: "Determine what needs to be renovated and set budget", EstimatedHours: 4, DaysFromStart: day(3)},
			{Name: "Research contractors", Description: "Research and shortlist potential contractors", EstimatedHours: 6, DaysFromStart: day(10), DependsOn: []string{"Define scope and budget"}},
			{Name: "Get quotes", Description: "Get detailed quotes from multiple contractors", EstimatedHours: 8, DaysFromStart: day(20), DependsOn: []string{"Research contractors"}},
			{Name: "Select contractor", Description: "Choose contractor and sign contract", EstimatedHours: 3, DaysFromStart: day(25), DependsOn: []string{"Get quotes"}},
			{Name: "Obtain permits", Description: "Apply for and obtain necessary permits", EstimatedHours: 4, DaysFromStart: day(30), DependsOn: []string{"Select contractor"}},
			{Name: "Order materials", Description: "Order all necessary materials and fixtures", EstimatedHours: 6, DaysFromStart: day(35), DependsOn: []string{"Select contractor"}},
			{Name: "Prepare work area", Description: "Clear and prepare area for renovation", EstimatedHours: 8, DaysFromStart: day(40), DependsOn: []string{"Obtain permits"}},
			{Name: "Demolition", Description: "Remove old fixtures and structures", EstimatedHours: 16, DaysFromStart: day(45), DependsOn: []string{"Prepare work area", "Order materials"}},
			{Name: "Rough work", Description: "Complete framing, plumbing, electrical rough-in", EstimatedHours: 40, DaysFromStart: day(55), DependsOn: []string{"Demolition"}},
			{Name: "Installation", Description: "Install new fixtures, flooring, cabinets", EstimatedHours: 32, DaysFromStart: day(70), DependsOn: []string{"Rough work"}},
			{Name: "Finishing touches", Description: "Paint, trim work, final installations", EstimatedHours: 24, DaysFromStart: day(80), DependsOn: []string{"Installation"}},
			{Name: "Final inspection", Description: "Schedule and complete final inspection", EstimatedHours: 2, DaysFromStart: day(90), DependsOn: []string{"Finishing touches"}},
		},
	},
	{
		ID:              "vacation-planning",
		Name:            "Vacation Planning",
		Description:     "Plan a family vacation from start to finish",
		Category:        domain.TemplateTravel,
		EstimatedDays:   60,
		SuggestedBudget: 3000,
		Tasks: []domain.TemplateTask{
			{Name: "Choose destination", Description: "Research and decide on vacation destination", EstimatedHours: 4, DaysFromStart: day(5)},
			{Name: "Set budget", Description: "Determine total budget and allocate to categories", EstimatedHours: 2, DaysFromStart: day(7), DependsOn: []string{"Choose destination"}},
			{Name: "Book flights", Description: "Research and book airfare or transportation", EstimatedHours: 3, DaysFromStart: day(45), DependsOn: []string{"Set budget"}},
			{Name: "Book accommodation", Description: "Reserve hotel, rental, or other lodging", EstimatedHours: 4, DaysFromStart: day(45), DependsOn: []string{"Set budget"}},
			{Name: "Plan activities", Description: "Research and plan activities and attractions", EstimatedHours: 6, DaysFromStart: day(30), DependsOn: []string{"Choose destination"}},
			{Name: "Make reservations", Description: "Book tours, restaurants, and activities", EstimatedHours: 3, DaysFromStart: day(21), DependsOn: []string{"Plan activities"}},
			{Name: "Check travel documents", Description: "Verify passports, visas, and other documents", EstimatedHours: 2, DaysFromStart: day(30)},
			{Name: "Arrange pet care", Description: "Arrange care for pets while away", EstimatedHours: 2, DaysFromStart: day(14)},
			{Name: "Plan packing list", Description: "Create comprehensive packing list", EstimatedHours: 2, DaysFromStart: day(10)},
			{Name: "Pack bags", Description: "Pack all luggage and carry-ons", EstimatedHours: 3, DaysFromStart: day(1), DependsOn: []string{"Plan packing list"}},
			{Name: "Prepare home", Description: "Secure home, stop mail, adjust thermostats", EstimatedHours: 2, DaysFromStart: day(0)},
		},
	},
	{
		ID:              "moving-house",
		Name:            "Moving House",
		Description:     "Organize and execute a household move",
		Category:        domain.TemplateHome,
		EstimatedDays:   60,
		SuggestedBudget: 2000,
		Tasks: []domain.TemplateTask{
			{Name: "Create moving timeline", Description: "Plan out all moving tasks and deadlines", EstimatedHours: 2, DaysFromStart: day(3)},
			{Name: "Research moving companies", Description: "Get quotes from multiple moving companies", EstimatedHours: 4, DaysFromStart: day(45), DependsOn: []string{"Create moving timeline"}},
			{Name: "Book movers", Description: "Select and book moving company", EstimatedHours: 2, DaysFromStart: day(40), DependsOn: []string{"Research moving companies"}},
			{Name: "Order packing supplies", Description: "Purchase boxes, tape, bubble wrap, labels", EstimatedHours: 2, DaysFromStart: day(30)},
			{Name: "Declutter and donate", Description: "Sort through belongings and donate unwanted items", EstimatedHours: 16, DaysFromStart: day(35)},
			{Name: "Notify utilities", Description: "Arrange disconnect/connect for utilities", EstimatedHours: 3, DaysFromStart: day(30)},
			{Name: "Change address", Description: "Update address with postal service, banks, etc.", EstimatedHours: 2, DaysFromStart: day(14)},
			{Name: "Pack non-essentials", Description: "Pack items not needed before move", EstimatedHours: 20, DaysFromStart: day(20), DependsOn: []string{"Order packing supplies", "Declutter and donate"}},
			{Name: "Pack essentials box", Description: "Pack box with items needed first day", EstimatedHours: 2, DaysFromStart: day(2)},
			{Name: "Final packing", Description: "Pack remaining items", EstimatedHours: 8, DaysFromStart: day(1), DependsOn: []string{"Pack non-essentials"}},
			{Name: "Clean old home", Description: "Deep clean the old residence", EstimatedHours: 6, DaysFromStart: day(0)},
			{Name: "Moving day coordination", Description: "Coordinate movers and oversee move", EstimatedHours: 8, DaysFromStart: day(0), DependsOn: []string{"Final packing"}},
		},
	},
	{
		ID:              "wedding-planning",
		Name:            "Wedding Planning",
		Description:     "Plan a wedding celebration",
		Category:        domain.TemplateEvent,
		EstimatedDays:   180,
		SuggestedBudget: 15000,
		Tasks: []domain.TemplateTask{
			{Name: "Set budget and guest count", Description: "Determine overall budget and approximate guest count", EstimatedHours: 3, DaysFromStart: day(5)},
			{Name: "Choose wedding date", Description: "Select and confirm wedding date", EstimatedHours: 2, DaysFromStart: day(7), DependsOn: []string{"Set budget and guest count"}},
			{Name: "Book venue", Description: "Research and book ceremony and reception venues", EstimatedHours: 8, DaysFromStart: day(150), DependsOn: []string{"Choose wedding date"}},
			{Name: "Hire photographer", Description: "Research and book wedding photographer", EstimatedHours: 4, DaysFromStart: day(140)},
			{Name: "Book caterer", Description: "Select and book catering service", EstimatedHours: 6, DaysFromStart: day(130), DependsOn: []string{"Book venue"}},
			{Name: "Send save-the-dates", Description: "Design and send save-the-date cards", EstimatedHours: 4, DaysFromStart: day(120), DependsOn: []string{"Choose wedding date"}},
			{Name: "Choose wedding party", Description: "Select bridesmaids, groomsmen, and other attendants", EstimatedHours: 2, DaysFromStart: day(140)},
			{Name: "Book florist", Description: "Select and book florist for flowers", EstimatedHours: 3, DaysFromStart: day(120)},
			{Name: "Order invitations", Description: "Design and order wedding invitations", EstimatedHours: 4, DaysFromStart: day(90)},
			{Name: "Send invitations", Description: "Mail wedding invitations to guests", EstimatedHours: 2, DaysFromStart: day(60), DependsOn: []string{"Order invitations"}},
			{Name: "Plan ceremony", Description: "Finalize ceremony details and music", EstimatedHours: 6, DaysFromStart: day(45)},
			{Name: "Create seating chart", Description: "Organize reception seating arrangements", EstimatedHours: 4, DaysFromStart: day(14)},
			{Name: "Final vendor confirmations", Description: "Confirm details with all vendors", EstimatedHours: 3, DaysFromStart: day(7)},
			{Name: "Rehearsal", Description: "Conduct wedding rehearsal with wedding party", EstimatedHours: 2, DaysFromStart: day(1)},
		},
	},
	{
		ID:              "garage-sale",
		Name:            "Garage Sale",
		Description:     "Organize and run a garage/yard sale",
		Category:        domain.TemplatePersonal,
		EstimatedDays:   21,
		SuggestedBudget: 50,
		Tasks: []domain.TemplateTask{
			{Name: "Choose sale date", Description: "Pick date and check local regulations", EstimatedHours: 1, DaysFromStart: day(3)},
			{Name: "Gather items to sell", Description: "Collect all items for sale from around house", EstimatedHours: 6, DaysFromStart: day(14)},
			{Name: "Clean and organize items", Description: "Clean items and organize by category", EstimatedHours: 4, DaysFromStart: day(10), DependsOn: []string{"Gather items to sell"}},
			{Name: "Price items", Description: "Determine and mark prices on all items", EstimatedHours: 3, DaysFromStart: day(7), DependsOn: []string{"Clean and organize items"}},
			{Name: "Get supplies", Description: "Buy price tags, change box, bags, signage materials", EstimatedHours: 1, DaysFromStart: day(7)},
			{Name: "Create advertising", Description: "Make signs and post online listings", EstimatedHours: 2, DaysFromStart: day(5), DependsOn: []string{"Choose sale date"}},
			{Name: "Set up sale area", Description: "Arrange tables and display items", EstimatedHours: 3, DaysFromStart: day(0), DependsOn: []string{"Price items", "Get supplies"}},
			{Name: "Run garage sale", Description: "Conduct the sale and handle transactions", EstimatedHours: 6, DaysFromStart: day(0), DependsOn: []string{"Set up sale area", "Create advertising"}},
			{Name: "Donate unsold items", Description: "Donate remaining items to charity", EstimatedHours: 2, DaysFromStart: day(0), DependsOn: []string{"Run garage sale"}},
		},
	},
}

func day(n int) *int { return &n }
