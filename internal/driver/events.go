package driver

// Stage — фаза обработки одного файла в конвейере проверки.
type Stage uint8

const (
	StageLoad Stage = iota
	StageParse
	StageAnalyze
)

// Status of a file within a stage.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusCached
	StatusError
)

// Event is emitted by CheckDir as files move through the pipeline.
// File пуст для событий уровня всего прогона.
type Event struct {
	File   string
	Stage  Stage
	Status Status
}

// emit отправляет событие, если наблюдатель подключен. Канал никогда не
// блокирует конвейер: буфер выделяет вызывающая сторона.
func emit(ch chan<- Event, ev Event) {
	if ch == nil {
		return
	}
	ch <- ev
}
