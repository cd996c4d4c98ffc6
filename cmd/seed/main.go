package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskhub/internal/config"
	"taskhub/internal/db"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

var skillCatalog = []string{
	"Go",
	"TypeScript",
	"PostgreSQL",
	"React",
	"Kubernetes",
	"Terraform",
	"Project Management",
	"UX Design",
}

type demoUser struct {
	username string
	email    string
	name     string
}

var demoUsers = []demoUser{
	{username: "alice", email: "alice@example.com", name: "Alice Moreau"},
	{username: "bob", email: "bob@example.com", name: "Bob Ekström"},
	{username: "carol", email: "carol@example.com", name: "Carol Ng"},
}

const demoPassword = "password123"

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Employee{},
		&model.Skill{},
		&model.EmployeeSkill{},
		&model.Project{},
		&model.ProjectEmployee{},
		&model.Task{},
		&model.Milestone{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	skillRepo := repository.NewSkillRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	created := seedSkills(ctx, skillRepo)
	log.Printf("Skill catalog: %d new skills", created)

	employees := seedUsers(ctx, userRepo)
	log.Printf("Demo users ready: %d", len(employees))

	if len(employees) > 0 {
		seedProject(ctx, projectRepo, taskRepo, employees)
	}

	log.Println("Seed completed successfully!")
}

// seedSkills inserts catalog skills that do not exist yet.
func seedSkills(ctx context.Context, repo repository.SkillRepository) int {
	created := 0
	for _, name := range skillCatalog {
		_, err := repo.FindByName(ctx, name)
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Error checking skill %q: %v", name, err)
		}
		if err := repo.Create(ctx, &model.Skill{Name: name}); err != nil {
			log.Fatalf("Error creating skill %q: %v", name, err)
		}
		created++
	}
	return created
}

// seedUsers creates demo users with employee profiles, skipping existing ones.
func seedUsers(ctx context.Context, repo repository.UserRepository) []model.Employee {
	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	var employees []model.Employee
	for _, d := range demoUsers {
		existing, err := repo.FindByEmail(ctx, d.email)
		if err == nil {
			if existing.Employee != nil {
				employees = append(employees, *existing.Employee)
			}
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Error checking user %q: %v", d.email, err)
		}

		user := &model.User{
			Username:     d.username,
			Email:        d.email,
			PasswordHash: string(hashed),
			Role:         model.RoleEmployee,
		}
		employee := &model.Employee{
			Name:         d.name,
			Contact:      d.email,
			MaxTasks:     model.DefaultMaxTasks,
			Availability: model.AvailabilityAvailable,
		}
		if err := repo.CreateWithEmployee(ctx, user, employee); err != nil {
			log.Fatalf("Error creating user %q: %v", d.email, err)
		}
		employees = append(employees, *employee)
	}
	return employees
}

// seedProject creates one sample project owned by the first demo employee,
// with the rest as members and a couple of starter tasks.
func seedProject(ctx context.Context, projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, employees []model.Employee) {
	owner := employees[0]

	existing, err := projectRepo.ListOwnedByEmployee(ctx, owner.ID)
	if err != nil {
		log.Fatalf("Error listing projects: %v", err)
	}
	if len(existing) > 0 {
		log.Println("Sample project already present, skipping")
		return
	}

	memberIDs := make([]uint, 0, len(employees)-1)
	for _, e := range employees[1:] {
		memberIDs = append(memberIDs, e.ID)
	}

	now := time.Now()
	project := &model.Project{
		Title:       "Onboarding Portal",
		Description: "Internal portal for new-hire onboarding workflows.",
		Priority:    model.PriorityHigh,
		Status:      model.ProjectStatusPlanning,
		StartDate:   now,
		Deadline:    now.AddDate(0, 1, 0),
		CreatorID:   owner.ID,
		OwnerID:     owner.ID,
	}
	if err := projectRepo.CreateWithMembers(ctx, project, memberIDs); err != nil {
		log.Fatalf("Error creating sample project: %v", err)
	}

	tasks := []model.Task{
		{Title: "Draft information architecture", Priority: model.PriorityHigh, Status: model.TaskStatusTodo, ProjectID: project.ID, EmployeeID: &owner.ID},
		{Title: "Set up CI pipeline", Priority: model.PriorityMedium, Status: model.TaskStatusTodo, ProjectID: project.ID},
	}
	for i := range tasks {
		if err := taskRepo.Create(ctx, &tasks[i]); err != nil {
			log.Fatalf("Error creating sample task: %v", err)
		}
	}
	log.Printf("Sample project %q created with %d members and %d tasks", project.Title, len(memberIDs), len(tasks))
}
