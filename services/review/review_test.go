package review

import (
	"fmt"
	"sync"
	"testing"

	listingRepo "fixitnow/database/repository/listing"
	providerRepo "fixitnow/database/repository/provider"
	reviewRepo "fixitnow/database/repository/review"
	userRepo "fixitnow/database/repository/user"
	"fixitnow/models"
	"fixitnow/utils"
)

// fakeReviewRepo is an in-memory ReviewRepository enforcing the unique
// (customer, listing) constraint the Mongo index provides.
type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*models.Review)}
}

func (r *fakeReviewRepo) Create(rv *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reviews {
		if existing.CustomerID == rv.CustomerID && existing.ServiceListingID == rv.ServiceListingID {
			return reviewRepo.ErrDuplicate
		}
	}
	cp := *rv
	r.reviews[rv.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) Update(rv *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[rv.ID]; !ok {
		return reviewRepo.ErrNotFound
	}
	cp := *rv
	r.reviews[rv.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return reviewRepo.ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) GetByID(id string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok {
		return nil, reviewRepo.ErrNotFound
	}
	cp := *rv
	return &cp, nil
}

func (r *fakeReviewRepo) Exists(serviceListingID, customerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rv := range r.reviews {
		if rv.ServiceListingID == serviceListingID && rv.CustomerID == customerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviewRepo) ListByListing(serviceListingID string, page models.PageRequest) (*models.Page[models.Review], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []models.Review
	for _, rv := range r.reviews {
		if rv.ServiceListingID == serviceListingID {
			items = append(items, *rv)
		}
	}
	page = page.Normalize()
	return &models.Page[models.Review]{Items: items, Page: page.Page, Size: page.Size, TotalItems: int64(len(items))}, nil
}

func (r *fakeReviewRepo) ListByProvider(providerProfileID string, page models.PageRequest) (*models.Page[models.Review], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []models.Review
	for _, rv := range r.reviews {
		if rv.ProviderProfileID == providerProfileID {
			items = append(items, *rv)
		}
	}
	page = page.Normalize()
	return &models.Page[models.Review]{Items: items, Page: page.Page, Size: page.Size, TotalItems: int64(len(items))}, nil
}

func (r *fakeReviewRepo) ListByCustomer(customerID string) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []models.Review
	for _, rv := range r.reviews {
		if rv.CustomerID == customerID {
			items = append(items, *rv)
		}
	}
	return items, nil
}

func (r *fakeReviewRepo) AggregateForProvider(providerProfileID string) (float64, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum, count int
	for _, rv := range r.reviews {
		if rv.ProviderProfileID == providerProfileID {
			sum += rv.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

type fakeProviderRepo struct {
	mu       sync.Mutex
	profiles map[string]*models.ProviderProfile
}

func (r *fakeProviderRepo) GetByID(id string) (*models.ProviderProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, providerRepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProviderRepo) UpdateRating(id string, rating float64, totalReviews int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return providerRepo.ErrNotFound
	}
	p.Rating = rating
	p.TotalReviews = totalReviews
	return nil
}

type fakeListingRepo struct {
	listings map[string]*models.ServiceListing
}

func (r *fakeListingRepo) GetByID(id string) (*models.ServiceListing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, listingRepo.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

type fakeUserRepo struct {
	users map[string]bool
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	if !r.users[id] {
		return nil, userRepo.ErrNotFound
	}
	return &models.User{ID: id}, nil
}

func (r *fakeUserRepo) Exists(id string) (bool, error) {
	return r.users[id], nil
}

func newTestService() (*DefaultReviewService, *fakeProviderRepo) {
	providers := &fakeProviderRepo{profiles: map[string]*models.ProviderProfile{
		"profile-1": {ID: "profile-1", UserID: "provider-1"},
	}}
	listings := &fakeListingRepo{listings: map[string]*models.ServiceListing{
		"listing-1": {ID: "listing-1", ProviderProfileID: "profile-1", ProviderUserID: "provider-1", Active: true},
		"listing-2": {ID: "listing-2", ProviderProfileID: "profile-1", ProviderUserID: "provider-1", Active: true},
	}}
	users := &fakeUserRepo{users: map[string]bool{
		"customer-1": true, "customer-2": true, "customer-3": true,
	}}
	svc := NewDefaultReviewService(newFakeReviewRepo(), listings, users, providers)
	return svc, providers
}

func TestCreateReview(t *testing.T) {
	svc, providers := newTestService()

	rv, err := svc.CreateReview("customer-1", models.ReviewInput{
		ServiceListingID: "listing-1", Rating: 4, Comment: "great work",
	})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if rv.ProviderProfileID != "profile-1" {
		t.Errorf("provider profile = %s, want profile-1 (from listing)", rv.ProviderProfileID)
	}

	p, _ := providers.GetByID("profile-1")
	if p.Rating != 4.0 || p.TotalReviews != 1 {
		t.Errorf("rating = %v/%d, want 4.0/1", p.Rating, p.TotalReviews)
	}
}

func TestCreateReviewValidation(t *testing.T) {
	svc, _ := newTestService()

	cases := []struct {
		name     string
		customer string
		input    models.ReviewInput
		wantCode string
	}{
		{"rating too low", "customer-1", models.ReviewInput{ServiceListingID: "listing-1", Rating: 0}, utils.CodeValidation},
		{"rating too high", "customer-1", models.ReviewInput{ServiceListingID: "listing-1", Rating: 6}, utils.CodeValidation},
		{"comment too long", "customer-1", models.ReviewInput{ServiceListingID: "listing-1", Rating: 3, Comment: longComment()}, utils.CodeValidation},
		{"unknown listing", "customer-1", models.ReviewInput{ServiceListingID: "nope", Rating: 3}, utils.CodeNotFound},
		{"unknown customer", "ghost", models.ReviewInput{ServiceListingID: "listing-1", Rating: 3}, utils.CodeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateReview(tc.customer, tc.input)
			if !utils.IsCode(err, tc.wantCode) {
				t.Errorf("err = %v, want code %s", err, tc.wantCode)
			}
		})
	}
}

func longComment() string {
	b := make([]byte, models.MaxReviewCommentLength+1)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}

func TestCreateReviewOnePerCustomerPerListing(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.CreateReview("customer-1", models.ReviewInput{ServiceListingID: "listing-1", Rating: 5}); err != nil {
		t.Fatalf("first review: %v", err)
	}
	_, err := svc.CreateReview("customer-1", models.ReviewInput{ServiceListingID: "listing-1", Rating: 2})
	if !utils.IsCode(err, utils.CodeConflict) {
		t.Fatalf("second review err = %v, want CONFLICT", err)
	}

	// Same customer on a different listing, and a different customer on the
	// same listing, are both fine.
	if _, err := svc.CreateReview("customer-1", models.ReviewInput{ServiceListingID: "listing-2", Rating: 3}); err != nil {
		t.Errorf("other listing: %v", err)
	}
	if _, err := svc.CreateReview("customer-2", models.ReviewInput{ServiceListingID: "listing-1", Rating: 3}); err != nil {
		t.Errorf("other customer: %v", err)
	}
}

func TestRatingAggregation(t *testing.T) {
	svc, providers := newTestService()

	// 5, 4, 3 across two listings of the same provider: mean 4.0.
	for i, rating := range []int{5, 4, 3} {
		customer := fmt.Sprintf("customer-%d", i+1)
		listing := "listing-1"
		if i == 2 {
			listing = "listing-2"
		}
		if _, err := svc.CreateReview(customer, models.ReviewInput{ServiceListingID: listing, Rating: rating}); err != nil {
			t.Fatalf("review %d: %v", i, err)
		}
	}

	p, _ := providers.GetByID("profile-1")
	if p.Rating != 4.0 || p.TotalReviews != 3 {
		t.Errorf("rating = %v/%d, want 4.0/3", p.Rating, p.TotalReviews)
	}
}

func TestRatingRoundedToTwoDecimals(t *testing.T) {
	svc, providers := newTestService()

	// 5 and 4 -> 4.5; 5, 4, 4 -> 4.333... -> 4.33.
	svc.CreateReview("customer-1", models.ReviewInput{ServiceListingID: "listing-1", Rating: 5})
	svc.CreateReview("customer-2", models.ReviewInput{ServiceListingID: "listing-1", Rating: 4})
	svc.CreateReview("customer-3", models.ReviewInput{ServiceListingID: "listing-2", Rating: 4})

	p, _ := providers.GetByID("profile-1")
	if p.Rating != 4.33 {
		t.Errorf("rating = %v, want 4.33", p.Rating)
	}
}

func TestUpdateReviewRecomputesRating(t *testing.T) {
	svc, providers := newTestService()

	rv, err := svc.CreateReview("customer-1", models.ReviewInput{ServiceListingID: "listing-1", Rating: 2})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}

	// Only the author may update.
	if _, err := svc.UpdateReview(rv.ID, "customer-2", models.ReviewInput{Rating: 5}); !utils.IsCode(err, utils.CodeUnauthorized) {
		t.Errorf("non-author update err = %v, want UNAUTHORIZED", err)
	}

	updated, err := svc.UpdateReview(rv.ID, "customer-1", models.ReviewInput{Rating: 5, Comment: "revised"})
	if err != nil {
		t.Fatalf("UpdateReview: %v", err)
	}
	if updated.Rating != 5 || updated.Comment != "revised" {
		t.Errorf("updated review = %+v", updated)
	}

	p, _ := providers.GetByID("profile-1")
	if p.Rating != 5.0 || p.TotalReviews != 1 {
		t.Errorf("rating = %v/%d, want 5.0/1", p.Rating, p.TotalReviews)
	}
}

func TestDeleteReviewRecomputesRating(t *testing.T) {
	svc, providers := newTestService()

	rv1, _ := svc.CreateReview("customer-1", models.ReviewInput{ServiceListingID: "listing-1", Rating: 5})
	rv2, _ := svc.CreateReview("customer-2", models.ReviewInput{ServiceListingID: "listing-1", Rating: 1})

	if err := svc.DeleteReview(rv2.ID, "customer-1"); !utils.IsCode(err, utils.CodeUnauthorized) {
		t.Errorf("non-author delete err = %v, want UNAUTHORIZED", err)
	}

	if err := svc.DeleteReview(rv2.ID, "customer-2"); err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}
	p, _ := providers.GetByID("profile-1")
	if p.Rating != 5.0 || p.TotalReviews != 1 {
		t.Errorf("after first delete: rating = %v/%d, want 5.0/1", p.Rating, p.TotalReviews)
	}

	// Deleting the last review resets the aggregate to zero.
	if err := svc.DeleteReview(rv1.ID, "customer-1"); err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}
	p, _ = providers.GetByID("profile-1")
	if p.Rating != 0 || p.TotalReviews != 0 {
		t.Errorf("after last delete: rating = %v/%d, want 0/0", p.Rating, p.TotalReviews)
	}

	if err := svc.DeleteReview(rv1.ID, "customer-1"); !utils.IsCode(err, utils.CodeNotFound) {
		t.Errorf("double delete err = %v, want NOT_FOUND", err)
	}
}

func TestHasReviewed(t *testing.T) {
	svc, _ := newTestService()

	got, err := svc.HasReviewed("listing-1", "customer-1")
	if err != nil || got {
		t.Errorf("HasReviewed before = %v, %v; want false, nil", got, err)
	}
	svc.CreateReview("customer-1", models.ReviewInput{ServiceListingID: "listing-1", Rating: 4})
	got, err = svc.HasReviewed("listing-1", "customer-1")
	if err != nil || !got {
		t.Errorf("HasReviewed after = %v, %v; want true, nil", got, err)
	}
}

func TestConcurrentReviewsConsistentAggregate(t *testing.T) {
	svc, providers := newTestService()

	const writers = 10
	users := svc.UserRepo.(*fakeUserRepo)
	for i := 0; i < writers; i++ {
		users.users[fmt.Sprintf("c-%d", i)] = true
	}

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			customer := fmt.Sprintf("c-%d", i)
			if _, err := svc.CreateReview(customer, models.ReviewInput{ServiceListingID: "listing-1", Rating: 3}); err != nil {
				t.Errorf("concurrent review %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	p, _ := providers.GetByID("profile-1")
	if p.TotalReviews != writers {
		t.Errorf("total reviews = %d, want %d", p.TotalReviews, writers)
	}
	if p.Rating != 3.0 {
		t.Errorf("rating = %v, want 3.0", p.Rating)
	}
}
