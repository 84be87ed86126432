package engagement

var catalog = map[PlanID]*Plan{
	PlanFree: {
		id:         PlanFree,
		title:      "Free",
		priceLabel: "$0",
		benefits: []string{
			"3 guided lessons a day",
			"2 knowledge quizzes a day",
			"Cycle and organ dashboards",
		},
		caps: DailyCaps{Lessons: Capped(3), Quizzes: Capped(2)},
	},
	PlanPlus: {
		id:         PlanPlus,
		title:      "Plus",
		priceLabel: "$4.99 / month",
		benefits: []string{
			"10 guided lessons a day",
			"10 knowledge quizzes a day",
			"AI coach check-ins",
			"Members-only shop offers",
		},
		caps: DailyCaps{Lessons: Capped(10), Quizzes: Capped(10)},
	},
	PlanPro: {
		id:         PlanPro,
		title:      "Pro",
		priceLabel: "$9.99 / month",
		benefits: []string{
			"Unlimited lessons",
			"Unlimited quizzes",
			"Priority AI coach",
			"Professional directory access",
		},
		caps: DailyCaps{Lessons: Unlimited, Quizzes: Unlimited},
	},
}

var planOrder = []PlanID{PlanFree, PlanPlus, PlanPro}

// LookupPlan returns the catalog plan for id. Ids outside the closed set resolve to the free plan.
func LookupPlan(id PlanID) *Plan {
	if p, ok := catalog[id]; ok {
		return p
	}
	return catalog[PlanFree]
}

// ListPlans returns all plans in display order.
func ListPlans() []*Plan {
	out := make([]*Plan, 0, len(planOrder))
	for _, id := range planOrder {
		out = append(out, catalog[id])
	}
	return out
}
