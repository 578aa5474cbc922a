// internal/sync/repo_sync.go
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"portfolio-service/internal/github"
	"portfolio-service/internal/skills"
	"portfolio-service/pkg/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultDescription = "No description provided."
	syncedProjectTags  = "GitHub, Project"

	lastSyncKey = "last_github_sync_time"
)

// SyncReport aggregates the outcome of a pull sync batch.
type SyncReport struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// PushEvent is the inbound webhook payload. Only payloads carrying both
// "repository" and "pusher" are treated as push events; anything else is a
// no-op.
type PushEvent struct {
	Repository *PushRepository `json:"repository"`
	Pusher     *Pusher         `json:"pusher"`
}

type PushRepository struct {
	Name            string  `json:"name"`
	HTMLURL         string  `json:"html_url"`
	Description     *string `json:"description"`
	StargazersCount int     `json:"stargazers_count"`
	LanguagesURL    string  `json:"languages_url"`
}

type Pusher struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PushResult reports what the webhook ingestor did with an event.
type PushResult struct {
	Status  string `json:"status"` // "success" | "ignored"
	Created bool   `json:"created,omitempty"`
	Project string `json:"project,omitempty"`
}

// RepoSyncService keeps the project and skill tables in step with GitHub.
// Two entry points share the same upsert flow: SyncAll (admin pull) and
// HandlePushEvent (webhook push).
type RepoSyncService struct {
	db *gorm.DB
	gh *github.Client
}

func NewRepoSyncService(db *gorm.DB, gh *github.Client) *RepoSyncService {
	return &RepoSyncService{db: db, gh: gh}
}

// SyncAll fetches every repository for the account and upserts each one.
// A listing failure aborts the whole batch; per-repository skill-sync faults
// are logged and skipped. Safe to rerun: an unchanged remote yields zero
// created projects.
func (s *RepoSyncService) SyncAll(ctx context.Context, account string) (*SyncReport, error) {
	log.Printf("🔄 [SYNC] Starting full GitHub sync for account %q", account)

	repos, err := s.gh.ListRepositories(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories for %s: %w", account, err)
	}
	log.Printf("📥 [SYNC] Retrieved %d repositories from GitHub", len(repos))

	report := &SyncReport{}
	for _, repo := range repos {
		created, project, err := s.UpsertRepository(ctx, repo)
		if err != nil {
			log.Printf("⚠️ [SYNC] Failed to upsert %s: %v", repo.HTMLURL, err)
			continue
		}
		if created {
			report.Created++
			log.Printf("✅ [SYNC] Created project %q (%s)", project.Title, project.GithubURL)
		} else {
			report.Updated++
		}

		s.SyncSkillsForRepository(ctx, repo.LanguagesURL)
	}

	if err := s.updateLastSyncTime(time.Now()); err != nil {
		log.Printf("⚠️ [SYNC] Failed to update last sync time: %v", err)
	}

	log.Printf("✅ [SYNC] Sync complete: %d created, %d updated", report.Created, report.Updated)
	return report, nil
}

// UpsertRepository creates or updates the project keyed by the repository's
// canonical URL. On the update branch only stars change; title and
// description stay as the admin left them.
func (s *RepoSyncService) UpsertRepository(ctx context.Context, repo github.Repository) (bool, *models.Project, error) {
	var existing models.Project
	result := s.db.WithContext(ctx).Where("github_url = ?", repo.HTMLURL).First(&existing)

	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil, result.Error
		}
		project := models.Project{
			GithubURL:   repo.HTMLURL,
			Title:       repo.Name,
			Description: descriptionOrDefault(repo.Description),
			Stars:       repo.StargazersCount,
			Tags:        syncedProjectTags,
			IsSynced:    true,
		}
		// The unique index on github_url is the real guard here: a racing
		// creator loses with a constraint error instead of duplicating.
		if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
			return false, nil, err
		}
		return true, &project, nil
	}

	existing.Stars = repo.StargazersCount
	if err := s.db.WithContext(ctx).Model(&existing).Update("stars", existing.Stars).Error; err != nil {
		return false, nil, err
	}
	return false, &existing, nil
}

// SyncSkillsForRepository gets-or-creates a skill for every language the
// repository reports. Best-effort: a failure here never fails the owning
// project's upsert, so everything is logged and swallowed.
func (s *RepoSyncService) SyncSkillsForRepository(ctx context.Context, languagesURL string) {
	languages := s.gh.GetLanguages(ctx, languagesURL)
	for name := range languages {
		if err := s.getOrCreateSkill(ctx, name); err != nil {
			log.Printf("⚠️ [SYNC] Failed to record skill %q: %v", name, err)
		}
	}
}

// getOrCreateSkill inserts the skill if it is missing. An existing skill is
// left completely untouched: the sync path never reclassifies a category the
// admin may have set by hand.
func (s *RepoSyncService) getOrCreateSkill(ctx context.Context, name string) error {
	var existing models.Skill
	result := s.db.WithContext(ctx).Where("name = ?", name).First(&existing)
	if result.Error == nil {
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	skill := models.Skill{
		Name:     name,
		Category: skills.Classify(name),
	}
	return s.db.WithContext(ctx).Create(&skill).Error
}

// HandlePushEvent is the single-repository variant of the upsert flow,
// driven by an inbound webhook body instead of a poll. A payload that does
// not look like a push event is acknowledged as a no-op, not an error; a body
// that fails to parse is returned as an error for the transport to map to 400.
func (s *RepoSyncService) HandlePushEvent(ctx context.Context, rawPayload []byte) (*PushResult, error) {
	var event PushEvent
	if err := json.Unmarshal(rawPayload, &event); err != nil {
		return nil, fmt.Errorf("invalid push payload: %w", err)
	}

	if event.Repository == nil || event.Pusher == nil {
		log.Printf("ℹ️ [WEBHOOK] Ignoring non-push payload (%d bytes)", len(rawPayload))
		s.recordSyncEvent(ctx, "ignored", "", rawPayload)
		return &PushResult{Status: "ignored"}, nil
	}

	repo := event.Repository
	created, project, err := s.applyPushedRepository(ctx, repo)
	if err != nil {
		return nil, err
	}
	if created {
		log.Printf("✅ [WEBHOOK] New project from push: %q (%s)", repo.Name, repo.HTMLURL)
	}

	s.SyncSkillsForRepository(ctx, repo.LanguagesURL)

	action := "updated"
	if created {
		action = "created"
	}
	s.recordSyncEvent(ctx, action, repo.HTMLURL, rawPayload)

	return &PushResult{Status: "success", Created: created, Project: project.Title}, nil
}

// applyPushedRepository mirrors UpsertRepository with the push path's one
// difference: an existing project gets its description refreshed when it
// changed, while title and stars are left alone.
func (s *RepoSyncService) applyPushedRepository(ctx context.Context, repo *PushRepository) (bool, *models.Project, error) {
	var existing models.Project
	result := s.db.WithContext(ctx).Where("github_url = ?", repo.HTMLURL).First(&existing)

	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil, result.Error
		}
		project := models.Project{
			GithubURL:   repo.HTMLURL,
			Title:       repo.Name,
			Description: descriptionOrDefault(repo.Description),
			Stars:       repo.StargazersCount,
			Tags:        syncedProjectTags,
			IsSynced:    true,
		}
		if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
			return false, nil, err
		}
		return true, &project, nil
	}

	if repo.Description != nil && *repo.Description != existing.Description {
		existing.Description = *repo.Description
		if err := s.db.WithContext(ctx).Model(&existing).Update("description", existing.Description).Error; err != nil {
			return false, nil, err
		}
	}
	return false, &existing, nil
}

// recordSyncEvent writes a webhook audit row. Best-effort only.
func (s *RepoSyncService) recordSyncEvent(ctx context.Context, action, repoURL string, payload []byte) {
	event := models.SyncEvent{
		Source:  "github",
		Action:  action,
		RepoURL: repoURL,
		Payload: datatypes.JSON(payload),
	}
	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		log.Printf("⚠️ [WEBHOOK] Failed to record sync event: %v", err)
	}
}

// updateLastSyncTime stores the pull sync watermark in the config table.
func (s *RepoSyncService) updateLastSyncTime(syncTime time.Time) error {
	value := syncTime.UTC().Format(time.RFC3339)

	var existing models.SyncConfig
	result := s.db.Where("key = ?", lastSyncKey).First(&existing)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return s.db.Create(&models.SyncConfig{Key: lastSyncKey, Value: value}).Error
		}
		return result.Error
	}
	return s.db.Model(&existing).Update("value", value).Error
}

func descriptionOrDefault(desc *string) string {
	if desc == nil || *desc == "" {
		return defaultDescription
	}
	return *desc
}
