package domain

import "fmt"

var (
	MessageSuccessSubscribe        = "subscribed successfully"
	MessageSuccessUnsubscribe      = "unsubscribed successfully"
	MessageSuccessGetSubscriptions = "success get subscriptions"

	MessageFailedSubscribe        = "failed to subscribe"
	MessageFailedUnsubscribe      = "failed to unsubscribe"
	MessageFailedGetSubscriptions = "failed to get subscriptions"

	ErrSubscribeToSelf      = NewValidationError("author", "you cannot subscribe to yourself")
	ErrAlreadySubscribed    = fmt.Errorf("%w: you are already subscribed to this user", ErrConflict)
	ErrSubscriptionNotFound = fmt.Errorf("%w: subscription not found", ErrNotFound)
)

type Subscription struct {
	User
	Recipes      []RecipeShort `json:"recipes"`
	RecipesCount int64         `json:"recipes_count"`
}
