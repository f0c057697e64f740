package app

import (
	"fmt"
	"strings"

	"github.com/sardorasatov93-code/Vakansiya-bot/internal/flow"
)

// qualificationText is the long requirements notice shown on /start.
const qualificationText = `**Direktor lavozimiga qo‘yiladigan malaka talablari:**

**Ma’lumot:** Nomzod oliy ma’lumotga, ya’ni bakalavr diplomiga ega bo‘lishi lozim. Magistratura darajasi yoki ilmiy unvon mavjudligi afzal.

**Mutaxassislik:** Pedagogika yo‘nalishida tahsil olgan bo‘lishi kerak. Agar nomzod pedagog bo‘lmasa yoki boshqa sohada oliy ma’lumotga ega bo‘lsa, u holda pedagogika yo‘nalishi bo‘yicha kasbiy qayta tayyorlash kursini tamomlagan bo‘lishi shart.

**Mehnat staji:** Kamida 3 yillik pedagogik ish tajribasiga ega bo‘lishi zarur.

**Kompyuter savodxonligi:** Microsoft Office dasturlari (Word, Excel, PowerPoint va boshqalar), zamonaviy axborot texnologiyalari, axborot tizimlari hamda internet tarmog‘ida ishlash bo‘yicha yetarli ko‘nikmaga ega bo‘lishi lozim.

**Qo‘shimcha talablar:**
1. O‘zbekiston Respublikasining “Maktabgacha ta’lim va tarbiya to‘g‘risida”, “Ta’lim to‘g‘risida”, “Pedagogning maqomi to‘g‘risida”, “Davlat fuqarolik xizmati to‘g‘risida”gi qonunlarini to‘liq bilishi;
2. Davlat tilini bilishi shart. Rus, ingliz yoki boshqa chet tillarini bilish afzallik hisoblanadi;
3. Menejerlik sertifikatiga ega bo‘lishi;
4. Ilmiy daraja yoki ilmiy unvonga ega bo‘lgan, hududiy maktabgacha va maktab ta’limi bo‘limlarida ikki yildan ortiq faoliyat yuritgan, Davlat mukofotlari bilan taqdirlangan yosh mutaxassislardan pedagogik ish staji talab etilmaydi;
5. Soha bo‘yicha normativ-huquqiy hujjatlarni bilishi, ularni amaliyotga tatbiq eta olishi, doimiy ravishda malakasini oshirgan bo‘lishi.

**Cheklovlar:**
O‘zbekiston Respublikasining “Maktabgacha ta’lim va tarbiya to‘g‘risida”gi Qonunning 44-moddasiga muvofiq, quyidagi shaxslar maktabgacha ta’lim tizimida mehnat faoliyatini amalga oshira olmaydi:
1. Muomala layoqatsiz yoki muomala layoqati cheklangan deb topilgan, pedagogik faoliyatga to‘sqinlik qiladigan kasalliklari yoki jismoniy nuqsonlari mavjud shaxslar;
2. Xizmat vazifalarini suiste’mol qilgan yoki jinoyat sodir etganlik uchun ilgari sudlangan shaxslar;
3. Maktabgacha ta’lim tashkilotlarida pedagogik faoliyatni amalga oshirishga yo‘l qo‘yilmaydi.

---
**Murojaat uchun:**
📞 Telefon: +998 93 303 54 54
👤 Admin: Sardor Asatov`

const (
	textStartGreeting = "👋 Salom, siz Jizzax viloyat DMTT bo‘sh ish o‘rinlari bo‘limidasiz.\n\n" + qualificationText
	textAdminGreeting = "Salom Admin! Ish joylarini boshqarish uchun /admin yozing."

	textNoOpenings     = "⚠️ **Hozirda hech qaysi tumanda bo'sh ish o'rinlari mavjud emas!**\nAdmin hali ish joyi qo'shgani yo'q."
	textChooseDistrict = "👇 Bo'sh ish o'rinlari mavjud tumanni tanlang:"
	textDistrictEmpty  = "Afsuski, bu tumanda hozircha bo'sh ish o'rni qolmadi."

	textAskPhone = "Endi **telefon raqamingizni** yuboring:"
	textBadPhone = "Telefon raqam aniqlanmadi. Iltimos, 'Telefon raqamni yuborish' tugmasini bosing yoki raqamni to'g'ri kiriting."
	textAskName  = "Iltimos, **F.I.Sh.**'ngizni to'liq kiriting:"

	textAskPassport = "4. Barcha hujjatlar qabul qilindi. Iltimos, **pasport** ma'lumotlarini quyidagi tartibda kiriting:\n\n" +
		"**[Kim tomonidan berilgan]**\n" +
		"**[Qachongacha amal qiladi (dd.mm.yyyy)]**"

	textSubmitted = "✅ Arizangiz va hujjatlaringiz qabul qilindi! **Siz bilan 48 soat ichida admin aloqaga chiqadi.** E'tiboringiz uchun rahmat."

	textBtnBack      = "⬅️ Ortga qaytish"
	textBtnHome      = "🏠 Bosh sahifa"
	textBtnContact   = "Telefon raqamni yuborish"
	textBtnStart     = "/start"
	textBtnAdminHome = "⬅️ Admin Panel"

	textAdminPanel     = "Admin paneliga xush kelibsiz:"
	textNotAdmin       = "Siz admin emassiz!"
	textAdminPickAdd   = "Ish joyi qo'shmoqchi bo'lgan tumanni tanlang:"
	textAdminPickClear = "Ish joylarini tozalash (o'chirish) uchun tumanni tanlang:"
	textAdminNoData    = "Hozircha hech qaysi tumanda ish joylari mavjud emas. Tozalash uchun ma'lumot yo'q."
	textAdminEmptyJob  = "Ish joyi nomini kiritmadingiz. Qayta urinib ko'ring."
	textStaleAction    = "Xatolik yuz berdi. Iltimos, boshidan boshlang (/start)."
)

func textChooseJob(district string) string {
	return fmt.Sprintf("**%s** tumanidagi bo'sh ish o'rinlaridan birini tanlang:", district)
}

func textJobChosen(district, job string) string {
	return fmt.Sprintf("Siz **%s** tumanidagi **%s** ish o'rnini tanladingiz.\n\n%s", district, job, textAskName)
}

// allowedTypesHint renders "pdf, zip, ..." from the MIME allowlist.
func allowedTypesHint() string {
	parts := make([]string, 0, len(flow.AllowedMIMETypes))
	for _, mime := range flow.AllowedMIMETypes {
		if i := strings.LastIndex(mime, "/"); i >= 0 {
			parts = append(parts, mime[i+1:])
		} else {
			parts = append(parts, mime)
		}
	}
	return strings.Join(parts, ", ")
}

func textBadDocument() string {
	return fmt.Sprintf(
		"⚠️ **Xatolik!** Iltimos, faqat **PDF, ZIP yoki RAR** fayl (ruxsat berilgan turlar: `%s`) yuboring. Boshqa turdagi ma'lumot qabul qilinmaydi.",
		allowedTypesHint(),
	)
}

// textAskDocument prompts for the document step matching the given role.
// In single-document mode only the diploma wording is used.
func textAskDocument(role flow.DocRole, single bool) string {
	if single {
		return "📄 Hujjatlarni yuborish bosqichi:\n\n" +
			"Iltimos, **hujjatingizni (PDF, ZIP yoki RAR fayl)** ko'rinishida yuboring."
	}
	switch role {
	case flow.RoleReference:
		return "2. Diplom qabul qilindi. Endi **ma'lumotnomangizni (PDF, ZIP yoki RAR fayl)** ko'rinishida yuboring."
	case flow.RoleCertificate:
		return "3. Ma'lumotnoma qabul qilindi. Endi **menejerlik sertifikatingizni (PDF, ZIP yoki RAR fayl)** ko'rinishida yuboring."
	default:
		return "📄 Hujjatlarni yuborish bosqichi:\n\n" +
			"1. Iltimos, **diplomingiz nusxasini (PDF, ZIP yoki RAR fayl)** ko'rinishida yuboring."
	}
}

func textSubmitFailed(err string) string {
	return fmt.Sprintf("❌ Xatolik yuz berdi. Admin xabar yuborishda muammo: %s. Iltimos, qayta urinib ko'ring yoki admin bilan bog'laning.", err)
}

func textAdminAskJobs(district string) string {
	return fmt.Sprintf("**%s** tumaniga qo'shiladigan **har bir** bog‘cha nomini **alohida SMS** qilib kiriting! (masalan: `2-DMTT` yoki `bosh o'qituvchi`)\n\n"+
		"Barcha ish joylarini kiritib bo'lgach, /admin buyrug'ini yozing.", district)
}

func textAdminJobAdded(district, job string) string {
	return fmt.Sprintf("✅ **%s** tumaniga ish joyi: **%s** muvaffaqiyatli qo‘shildi. Yana bir ish joyi nomini kiriting yoki /admin buyrug'ini yozing.", district, job)
}

func textAdminJobDuplicate(district, job string) string {
	return fmt.Sprintf("⚠️ **%s** tumaniga **%s** allaqachon qo'shilgan. Boshqa nom kiriting yoki tugatish uchun /admin yozing.", district, job)
}

func textAdminConfirmClear(district string, count int) string {
	return fmt.Sprintf("⚠️ **DIQQAT!** Siz **%s** tumanidagi barcha (%d ta) ish joylarini **butunlay o'chirmoqchisiz**.\n\nTasdiqlaysizmi?", district, count)
}

func textAdminCleared(district string, count int) string {
	return fmt.Sprintf("✅ **%s** tumanidan **%d** ta ish joyi muvaffaqiyatli tozalandi.", district, count)
}

func textAdminNothingToClear(district string) string {
	return fmt.Sprintf("⚠️ **%s** tumanida tozalash uchun ish joylari topilmadi.", district)
}
