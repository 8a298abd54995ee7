package cmd

import (
	"errors"
	"reflect"
	"testing"

	"github.com/windsorcli/molecule/api/v1alpha1"
)

// setupTestSequence configures mocks with sequence and records the actions run
func setupTestSequence(mocks *Mocks, sequence []string) *[]string {
	mocks.ConfigHandler.GetConfigFunc = func() *v1alpha1.Config {
		return &v1alpha1.Config{Scenario: &v1alpha1.ScenarioConfig{TestSequence: sequence}}
	}
	actions := &[]string{}
	mocks.ConfigHandler.SetActionFunc = func(action string) {
		*actions = append(*actions, action)
	}
	return actions
}

func TestTestCmd(t *testing.T) {
	t.Run("RunsScenarioSequence", func(t *testing.T) {
		// Given a scenario test sequence
		mocks := setupMocks(t)
		actions := setupTestSequence(mocks, []string{"create", "converge", "verify", "destroy"})

		// When testing
		_, err := execute(t, mocks, "test")

		// Then each action runs in order
		if err != nil {
			t.Fatalf("Expected success, got error: %v", err)
		}
		expected := []string{"create", "converge", "verify", "destroy"}
		if !reflect.DeepEqual(*actions, expected) {
			t.Errorf("Expected %v, got %v", expected, *actions)
		}
	})

	t.Run("DefaultSequence", func(t *testing.T) {
		mocks := setupMocks(t)
		actions := setupTestSequence(mocks, nil)

		_, err := execute(t, mocks, "test")

		if err != nil {
			t.Fatalf("Expected success, got error: %v", err)
		}
		if len(*actions) != 12 || (*actions)[0] != "dependency" {
			t.Errorf("Expected the default sequence, got %v", *actions)
		}
	})

	t.Run("DestroyNever", func(t *testing.T) {
		// Given --destroy=never
		mocks := setupMocks(t)
		actions := setupTestSequence(mocks, []string{"create", "converge", "destroy"})

		// When testing
		_, err := execute(t, mocks, "test", "--destroy", "never")

		// Then destroy is left out
		if err != nil {
			t.Fatalf("Expected success, got error: %v", err)
		}
		if !reflect.DeepEqual(*actions, []string{"create", "converge"}) {
			t.Errorf("Expected [create converge], got %v", *actions)
		}
	})

	t.Run("DestroyAfterFailure", func(t *testing.T) {
		// Given a converge that fails
		mocks := setupMocks(t)
		actions := setupTestSequence(mocks, []string{"create", "converge", "verify", "destroy"})
		mocks.Provisioner.ConvergeFunc = func(string) (string, error) {
			return "", errors.New("converge failed")
		}

		// When testing
		_, err := execute(t, mocks, "test")

		// Then destroy runs before the error is returned
		if err == nil {
			t.Fatal("Expected error")
		}
		if !reflect.DeepEqual(*actions, []string{"create", "converge", "destroy"}) {
			t.Errorf("Expected [create converge destroy], got %v", *actions)
		}
	})

	t.Run("InvalidDestroyStrategy", func(t *testing.T) {
		mocks := setupMocks(t)

		_, err := execute(t, mocks, "test", "--destroy", "sometimes")

		if err == nil {
			t.Error("Expected error for invalid destroy strategy")
		}
	})
}

func TestWithoutAction(t *testing.T) {
	result := withoutAction([]string{"destroy", "create", "destroy"}, "destroy")

	if !reflect.DeepEqual(result, []string{"create"}) {
		t.Errorf("Expected [create], got %v", result)
	}
}
