package entity

// WorkflowState состояние цикла снимок-распознавание-синхронизация
type WorkflowState string

const (
	StateIdle        WorkflowState = "idle"        // ждём действия пользователя
	StateCapturing   WorkflowState = "capturing"   // снимаем кадр
	StateClassifying WorkflowState = "classifying" // ждём ответа сервиса распознавания
	StateNotifying   WorkflowState = "notifying"   // показываем уведомление
)

// CycleOutcome результат одного завершённого цикла
type CycleOutcome struct {
	CycleID string
	Seq     uint64
	Intent  ClassifyIntent
	Item    string
	Stale   bool // ответ пришёл позже более нового цикла и не показан
}
