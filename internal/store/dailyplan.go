package store

// dailyPlanDoc tolerates the legacy document shape where the plan was three
// named slots instead of a four-element list.
type dailyPlanDoc struct {
	Tasks         []string `json:"tasks"`
	ShowOnStartup bool     `json:"show_on_startup"`
	Morning       string   `json:"morning,omitempty"`
	Afternoon     string   `json:"afternoon,omitempty"`
	Evening       string   `json:"evening,omitempty"`
}

// Plan loads the daily plan, seeding the first three slots from legacy
// morning/afternoon/evening keys when no task list is present.
func (s *Store) Plan(profile string) (DailyPlan, error) {
	var doc dailyPlanDoc
	_, err := loadDoc(s.profileDoc(profile, dailyPlanFile), &doc)
	if err != nil {
		return DailyPlan{}, err
	}

	plan := DailyPlan{ShowOnStartup: doc.ShowOnStartup}
	tasks := doc.Tasks
	if len(tasks) == 0 && (doc.Morning != "" || doc.Afternoon != "" || doc.Evening != "") {
		tasks = []string{doc.Morning, doc.Afternoon, doc.Evening}
	}
	for i := 0; i < len(plan.Tasks) && i < len(tasks); i++ {
		plan.Tasks[i] = tasks[i]
	}
	return plan, nil
}

// SavePlan overwrites the four task slots in place.
func (s *Store) SavePlan(profile string, plan DailyPlan) error {
	return saveDoc(s.profileDoc(profile, dailyPlanFile), plan)
}
